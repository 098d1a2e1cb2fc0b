package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/solace-cli/solace/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoodLog records today's mood on a 1-10 scale.
func (r *Runner) MoodLog(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	value := cmd.Float("value")
	emoji := cmd.String("emoji")
	notes := cmd.String("notes")

	r.logger.Info("logging mood", "value", value)

	entry, err := r.svcs.Mood.Log(ctx, value, emoji, notes)
	if err != nil {
		return fmt.Errorf("failed to log mood: %w", err)
	}

	r.writePlain("✓ Mood logged: %.1f/10", entry.MoodValue)
	if entry.MoodEmoji != "" {
		r.writePlain(" %s", entry.MoodEmoji)
	}
	r.writePlain("\n")
	return nil
}

// MoodToday shows today's mood entry, if any.
func (r *Runner) MoodToday(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	entry, err := r.svcs.Mood.Today(ctx)
	if errors.Is(err, shared.ErrEntryNotFound) {
		r.writePlain("No mood logged today. Run 'solace mood log' to check in.\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch today's mood: %w", err)
	}

	r.writePlain("Today: %.1f/10", entry.MoodValue)
	if entry.MoodEmoji != "" {
		r.writePlain(" %s", entry.MoodEmoji)
	}
	if entry.Notes != "" {
		r.writePlain("  %s", entry.Notes)
	}
	r.writePlain("\n")
	return nil
}

// MoodList prints recent mood entries.
func (r *Runner) MoodList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	skip := cmd.Int("skip")

	entries, err := r.svcs.Mood.List(ctx, skip, limit)
	if err != nil {
		return fmt.Errorf("failed to list mood entries: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlain("No mood entries yet.\n")
		return nil
	}

	for _, entry := range entries {
		r.writePlain("%s  %.1f/10", entry.CreatedAt.Format("2006-01-02"), entry.MoodValue)
		if entry.MoodEmoji != "" {
			r.writePlain("  %s", entry.MoodEmoji)
		}
		if entry.Notes != "" {
			r.writePlain("  %s", entry.Notes)
		}
		r.writePlain("\n")
	}

	return nil
}

// MoodWeekly shows the weekly mood summary.
func (r *Runner) MoodWeekly(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	summary, err := r.svcs.Mood.Weekly(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch weekly summary: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("This Week")
	r.writePlain("Average mood: %.1f/10\n", summary.Average)
	r.writePlain("Entries: %d\n", summary.EntriesCount)
	if summary.Trend != "" {
		r.writePlain("Trend: %s\n", summary.Trend)
	}
	for _, day := range summary.DailyBreakdown {
		r.writePlain("  %s  %.1f\n", day.Date, day.AverageMood)
	}

	return nil
}

// MoodMonthly shows the monthly mood summary.
func (r *Runner) MoodMonthly(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	summary, err := r.svcs.Mood.Monthly(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch monthly summary: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("This Month")
	r.writePlain("Average mood: %.1f/10\n", summary.Average)
	r.writePlain("Entries: %d\n", summary.EntriesCount)
	for _, week := range summary.WeeklyAverages {
		r.writePlain("  week %d  %.1f\n", week.Week, week.Average)
	}
	if summary.BestDay != nil {
		r.writePlain("Best day: %s (%.1f)\n", summary.BestDay.CreatedAt.Format("2006-01-02"), summary.BestDay.MoodValue)
	}
	if summary.ChallengingDay != nil {
		r.writePlain("Hardest day: %s (%.1f)\n", summary.ChallengingDay.CreatedAt.Format("2006-01-02"), summary.ChallengingDay.MoodValue)
	}

	return nil
}

// moodCommand handles mood tracking operations
func moodCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mood",
		Usage: "Track and review your mood",
		Commands: []*cli.Command{
			{
				Name:  "log",
				Usage: "Log how you are feeling on a 1-10 scale",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Usage:    "Mood value from 1 (low) to 10 (high)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "emoji",
						Usage: "Optional emoji for the entry",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Optional notes",
					},
				},
				Action: r.MoodLog,
			},
			{
				Name:   "today",
				Usage:  "Show today's mood entry",
				Action: r.MoodToday,
			},
			{
				Name:  "list",
				Usage: "List recent mood entries",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 30,
					},
					&cli.IntFlag{
						Name:  "skip",
						Usage: "Number of entries to skip",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoodList,
			},
			{
				Name:  "weekly",
				Usage: "Show this week's mood summary",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoodWeekly,
			},
			{
				Name:  "monthly",
				Usage: "Show this month's mood summary",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoodMonthly,
			},
		},
	}
}
