package main

import (
	"context"
	"fmt"

	"github.com/solace-cli/solace/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CacheSync pulls journal and mood entries into the local SQLite cache.
//
// Entries already cached are skipped, so repeated runs only fetch what is new.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	engine, done, err := r.openEngine(true)
	if err != nil {
		return err
	}
	defer done()

	r.logger.Info("syncing local cache", "database", r.config.Database.Path)
	r.writePlain("Syncing entries to local cache...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("• %s\n", update.Message)
		}
	}()

	result, err := engine.SyncLocal(ctx, progressCh)
	close(progressCh)

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	r.writePlainHeader("Sync Complete")
	r.writePlain("Journal: %d new, %d already cached\n", result.JournalSynced, result.JournalSkipped)
	r.writePlain("Mood: %d new, %d already cached\n", result.MoodSynced, result.MoodSkipped)

	return nil
}

// cacheCommand handles local cache operations
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local offline cache",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Pull journal and mood entries into the local cache",
				Action: r.CacheSync,
			},
		},
	}
}
