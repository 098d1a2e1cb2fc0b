package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/solace-cli/solace/internal/formatter"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// BulkExportOpts contains configuration for bulk data exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: solace_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Backend requests per second (default: 5)
}

// EntryExportResult records the outcome of exporting one journal entry.
type EntryExportResult struct {
	EntryID int
	Title   string
	Success bool
	File    string
	Error   error
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalEntries      int
	SuccessfulExports int
	FailedExports     int
	MoodEntries       int
	OutputDirectory   string
	ManifestPath      string
	Results           []EntryExportResult
}

type entryExportJob struct {
	Entry models.JournalEntry
}

// BulkExport writes journal and mood data to files concurrently with rate
// limiting and progress tracking.
//
// Journal entries are fetched page by page from the backend, gated by the
// rate limiter, and handed to a worker pool that writes one file per entry.
// Mood entries always land in a single CSV since they are tabular. A
// manifest file summarizes the run.
func (e *CareEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.svcs == nil {
		return nil, fmt.Errorf("%w: services not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("solace_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		OutputDirectory: opts.OutputDir,
		Results:         []EntryExportResult{},
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	moods, err := e.fetchAllMoods(ctx, limiter)
	if err != nil {
		return result, fmt.Errorf("fetching mood entries: %w", err)
	}
	result.MoodEntries = len(moods)

	moodFile, err := formatter.WriteMoodCSVExport(moods, filepath.Join(opts.OutputDir, "mood_entries.csv"))
	if err != nil {
		return result, fmt.Errorf("writing mood export: %w", err)
	}

	entries, err := e.fetchAllJournal(ctx, limiter)
	if err != nil {
		return result, fmt.Errorf("fetching journal entries: %w", err)
	}
	result.TotalEntries = len(entries)

	e.sendProgress(prog, exportStartUpdate(len(entries)))

	jobs := make(chan entryExportJob, len(entries))
	results := make(chan EntryExportResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, opts)
	}

	for _, entry := range entries {
		jobs <- entryExportJob{Entry: entry}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(entries), res.Title))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(entries), res.Title, res.Error))
		}
	}

	manifest := &formatter.BulkExportManifest{
		ExportedAt:     time.Now(),
		Format:         opts.Format,
		JournalEntries: result.SuccessfulExports,
		MoodEntries:    result.MoodEntries,
		Files:          []string{moodFile},
	}

	for _, res := range result.Results {
		if res.Success {
			manifest.Files = append(manifest.Files, res.File)
		} else {
			manifest.Errors = append(manifest.Errors, fmt.Sprintf("entry %d: %v", res.EntryID, res.Error))
		}
	}

	manifestPath, err := formatter.WriteBulkExportManifest(manifest, opts.OutputDir)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}

	result.ManifestPath = manifestPath

	return result, nil
}

// fetchAllJournal pages through the backend's journal entries, waiting on
// the limiter before each page.
func (e *CareEngine) fetchAllJournal(ctx context.Context, limiter *rate.Limiter) ([]models.JournalEntry, error) {
	var all []models.JournalEntry

	for skip := 0; ; skip += syncPageSize {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := e.svcs.Journal.List(ctx, skip, syncPageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) < syncPageSize {
			return all, nil
		}
	}
}

// fetchAllMoods pages through the backend's mood entries.
func (e *CareEngine) fetchAllMoods(ctx context.Context, limiter *rate.Limiter) ([]models.MoodEntry, error) {
	var all []models.MoodEntry

	for skip := 0; ; skip += syncPageSize {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := e.svcs.Mood.List(ctx, skip, syncPageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) < syncPageSize {
			return all, nil
		}
	}
}

// exportWorker writes journal entry files from the jobs channel.
func exportWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan entryExportJob, results chan<- EntryExportResult, opts BulkExportOpts) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSingleEntry(job.Entry, opts)
	}
}

// exportSingleEntry writes one journal entry in the requested format.
func exportSingleEntry(entry models.JournalEntry, opts BulkExportOpts) EntryExportResult {
	result := EntryExportResult{
		EntryID: entry.ID,
		Title:   entry.Title,
	}

	base := filepath.Join(opts.OutputDir, entryFilename(entry))

	var (
		data []byte
		path string
		err  error
	)

	switch opts.Format {
	case "markdown":
		path = base + ".md"
		data, err = formatter.ExportJournalToMarkdown([]models.JournalEntry{entry}, entry.Title)
	case "txt":
		path = base + ".txt"
		data, err = formatter.ExportJournalToText([]models.JournalEntry{entry})
	case "csv":
		path = base + ".csv"
		data, err = formatter.ExportJournalToCSV([]models.JournalEntry{entry})
	case "json":
		fallthrough
	default:
		path = base + ".json"
		data, err = shared.MarshalJSON(entry, true)
	}

	if err != nil {
		result.Error = fmt.Errorf("formatting entry: %w", err)
		return result
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		result.Error = fmt.Errorf("writing entry file: %w", err)
		return result
	}

	result.File = path
	result.Success = true

	return result
}

// entryFilename derives a stable, filesystem-safe name for an entry.
func entryFilename(entry models.JournalEntry) string {
	slug := strings.ToLower(entry.Title)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return fmt.Sprintf("entry_%d", entry.ID)
	}

	return fmt.Sprintf("entry_%d_%s", entry.ID, slug)
}
