package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AnalyticsDashboard prints the combined wellbeing dashboard.
func (r *Runner) AnalyticsDashboard(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	dashboard, err := r.svcs.Analytics.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(dashboard, true)
	}

	r.writePlainHeader("Last 30 Days")
	r.writePlain("Average mood: %.1f/10 (%d entries)\n",
		dashboard.MoodAnalytics.AverageMood30Days, dashboard.MoodAnalytics.TotalMoodEntries)
	r.writePlain("Journal entries: %d (%d voice, %d text)\n",
		dashboard.JournalAnalytics.TotalEntries30Days,
		dashboard.JournalAnalytics.VoiceEntries,
		dashboard.JournalAnalytics.TextEntries)
	r.writePlain("Days active: %d, current streak: %d\n",
		dashboard.Engagement.DaysActive, dashboard.Engagement.StreakDays)

	if len(dashboard.MoodAnalytics.WeeklyTrends) > 0 {
		r.writePlain("\nWeekly mood trend:\n")
		for _, week := range dashboard.MoodAnalytics.WeeklyTrends {
			r.writePlain("  %s  %.1f (%d entries)\n", week.Week, week.AverageMood, week.EntriesCount)
		}
	}

	return nil
}

// AnalyticsTrends prints daily mood trend points over a window.
func (r *Runner) AnalyticsTrends(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	days := cmd.Int("days")

	trends, err := r.svcs.Analytics.MoodTrends(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to fetch mood trends: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(trends, true)
	}

	r.writePlainHeader(fmt.Sprintf("Mood Trend (%d days)", days))
	for _, point := range trends.TrendData {
		r.writePlain("  %s  %.1f (%d entries)\n", point.Date, point.AverageMood, point.EntriesCount)
	}
	r.writePlain("Overall average: %.1f over %d entries\n", trends.Summary.OverallAverage, trends.Summary.TotalEntries)
	if trends.Summary.BestDay != nil {
		r.writePlain("Best day: %s (%.1f)\n", trends.Summary.BestDay.Date, trends.Summary.BestDay.AverageMood)
	}
	if trends.Summary.ChallengingDay != nil {
		r.writePlain("Hardest day: %s (%.1f)\n", trends.Summary.ChallengingDay.Date, trends.Summary.ChallengingDay.AverageMood)
	}

	return nil
}

// analyticsCommand handles analytics operations
func analyticsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "analytics",
		Aliases: []string{"stats"},
		Usage:   "Review wellbeing analytics",
		Commands: []*cli.Command{
			{
				Name:  "dashboard",
				Usage: "Combined mood, journal, and engagement summary",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AnalyticsDashboard,
			},
			{
				Name:  "trends",
				Usage: "Daily mood trend over a window",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Window size in days",
						Value: 30,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AnalyticsTrends,
			},
		},
	}
}
