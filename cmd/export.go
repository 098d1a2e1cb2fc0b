package main

import (
	"context"
	"fmt"

	"github.com/solace-cli/solace/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportRun writes journal and mood data to files in the requested format.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	engine, done, err := r.openEngine(false)
	if err != nil {
		return err
	}
	defer done()

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	// CLI flags fall back to the config's export section.
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.Workers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RateLimit
	}

	r.logger.Info("starting bulk export", "format", opts.Format, "workers", opts.NumWorkers)
	r.writePlain("Exporting entries...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			if update.Phase == tasks.ExportEntries && update.Step > 0 {
				r.writePlain("   %s\n", update.Message)
			} else {
				r.writePlain("• %s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Journal entries: %d/%d exported\n", result.SuccessfulExports, result.TotalEntries)
	r.writePlain("Mood entries: %d\n", result.MoodEntries)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d entries:\n", result.FailedExports)
		for _, entry := range result.Results {
			if !entry.Success {
				r.writePlain("  - #%d %s: %v\n", entry.EntryID, entry.Title, entry.Error)
			}
		}
	}

	return nil
}

// exportCommand handles bulk export operations
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export your journal and mood data to files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, or txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Backend requests per second",
			},
		},
		Action: r.ExportRun,
	}
}
