package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// JournalNew creates a text journal entry.
func (r *Runner) JournalNew(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	title := cmd.String("title")
	content := cmd.StringArg("content")

	r.logger.Info("creating journal entry", "title", title)

	entry, err := r.svcs.Journal.Create(ctx, title, content)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	r.writePlain("✓ Entry created: #%d %s\n", entry.ID, entry.Title)
	return nil
}

// JournalVoice uploads an audio recording as a voice journal entry.
func (r *Runner) JournalVoice(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	title := cmd.String("title")
	audioPath := cmd.String("file")

	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	r.logger.Info("uploading voice journal entry", "title", title, "file", audioPath)

	entry, err := r.svcs.Journal.CreateVoice(ctx, title, filepath.Base(audioPath), file)
	if err != nil {
		return fmt.Errorf("failed to create voice entry: %w", err)
	}

	r.writePlain("✓ Voice entry created: #%d %s\n", entry.ID, entry.Title)
	return nil
}

// JournalList prints journal entries, newest first.
func (r *Runner) JournalList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	skip := cmd.Int("skip")

	entries, err := r.svcs.Journal.List(ctx, skip, limit)
	if err != nil {
		return fmt.Errorf("failed to list journal entries: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlain("No journal entries yet. Run 'solace journal new' to write one.\n")
		return nil
	}

	for _, entry := range entries {
		kind := "text"
		if entry.IsVoiceEntry {
			kind = "voice"
		}
		r.writePlain("#%d  %s  [%s]  %s\n", entry.ID, entry.CreatedAt.Format("2006-01-02"), kind, entry.Title)
	}

	return nil
}

// JournalShow prints one journal entry in full.
func (r *Runner) JournalShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	entryID := cmd.Int("id")

	entry, err := r.svcs.Journal.Get(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to fetch entry: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entry, true)
	}

	r.writePlainHeader(entry.Title)
	r.writePlain("Date: %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	if entry.IsVoiceEntry {
		r.writePlain("Type: voice\n")
		if entry.VoiceRecordingPath != "" {
			r.writePlain("Recording: %s\n", entry.VoiceRecordingPath)
		}
	}
	r.writePlain("\n%s\n", entry.Content)
	return nil
}

// JournalDelete removes a journal entry.
func (r *Runner) JournalDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	entryID := cmd.Int("id")

	if err := r.svcs.Journal.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	r.writePlain("✓ Entry #%d deleted\n", entryID)
	return nil
}

// journalCommand handles journal operations
func journalCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Aliases: []string{"j"},
		Usage:   "Write and browse journal entries",
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "Create a text journal entry",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "content",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Entry title",
						Required: true,
					},
				},
				Action: r.JournalNew,
			},
			{
				Name:  "voice",
				Usage: "Upload an audio recording as a voice entry",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Entry title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the audio recording",
						Required: true,
					},
				},
				Action: r.JournalVoice,
			},
			{
				Name:  "list",
				Usage: "List journal entries",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
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
				Action: r.JournalList,
			},
			{
				Name:  "show",
				Usage: "Show one journal entry in full",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Entry ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.JournalShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a journal entry",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Entry ID",
						Required: true,
					},
				},
				Action: r.JournalDelete,
			},
		},
	}
}
