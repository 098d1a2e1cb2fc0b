package main

import (
	"context"
	"fmt"
	"time"

	"github.com/solace-cli/solace/internal/shared"
	"github.com/urfave/cli/v3"
)

// RemindAdd schedules a reminder.
func (r *Runner) RemindAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	title := cmd.String("title")
	message := cmd.String("message")
	at := cmd.String("at")
	recurrence := cmd.String("every")

	scheduledTime, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return fmt.Errorf("%w: --at must be RFC3339, e.g. 2026-09-01T09:00:00Z", shared.ErrInvalidFlag)
	}

	r.logger.Info("creating reminder", "title", title, "at", scheduledTime)

	reminder, err := r.svcs.Reminders.Create(ctx, title, message, scheduledTime, recurrence)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	r.writePlain("✓ Reminder #%d scheduled for %s", reminder.ID, reminder.ScheduledTime.Format("2006-01-02 15:04"))
	if reminder.IsRecurring {
		r.writePlain(" (%s)", reminder.RecurrencePattern)
	}
	r.writePlain("\n")
	return nil
}

// RemindList prints scheduled reminders.
func (r *Runner) RemindList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	reminders, err := r.svcs.Reminders.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(reminders, true)
	}

	if len(reminders) == 0 {
		r.writePlain("No reminders scheduled.\n")
		return nil
	}

	for _, reminder := range reminders {
		r.writePlain("#%d  %s  %s", reminder.ID, reminder.ScheduledTime.Format("2006-01-02 15:04"), reminder.Title)
		if reminder.IsRecurring {
			r.writePlain("  (%s)", reminder.RecurrencePattern)
		}
		r.writePlain("\n")
	}

	return nil
}

// RemindDelete cancels a reminder.
func (r *Runner) RemindDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	reminderID := cmd.Int("id")

	if err := r.svcs.Reminders.Delete(ctx, reminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	r.writePlain("✓ Reminder #%d cancelled\n", reminderID)
	return nil
}

// RemindTemplates prints the predefined reminder suggestions.
func (r *Runner) RemindTemplates(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	templates, err := r.svcs.Reminders.Templates(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reminder templates: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(templates, true)
	}

	for _, tmpl := range templates {
		r.writePlain("%s  (%s, %s)\n", tmpl.Title, tmpl.SuggestedTime, tmpl.Recurrence)
		r.writePlain("  %s\n", tmpl.Message)
	}

	return nil
}

// remindCommand handles reminder operations
func remindCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Schedule gentle check-in reminders",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Schedule a reminder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Reminder title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Reminder message",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "at",
						Usage:    "Scheduled time (RFC3339)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "every",
						Usage: "Recurrence pattern: daily, weekly, or monthly",
					},
				},
				Action: r.RemindAdd,
			},
			{
				Name:   "list",
				Usage:  "List scheduled reminders",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.RemindList,
			},
			{
				Name:  "delete",
				Usage: "Cancel a reminder",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Reminder ID",
						Required: true,
					},
				},
				Action: r.RemindDelete,
			},
			{
				Name:   "templates",
				Usage:  "Show predefined reminder suggestions",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.RemindTemplates,
			},
		},
	}
}
