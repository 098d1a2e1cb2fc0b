// package tasks implements multi-step operations against the grief-support backend.
//
// The core abstraction is Engine, which orchestrates catalog dumps, cache syncs, and bulk exports.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/services"
	"github.com/solace-cli/solace/internal/shared"
)

// EndpointResult represents the result of fetching data from a single backend endpoint.
type EndpointResult struct {
	Endpoint string
	Data     any
	Error    error
}

// DumpResult contains the shared catalogs fetched from the backend.
type DumpResult struct {
	Healthy   bool                      // Health probe outcome
	Rooms     []models.SupportRoom      // Peer support rooms
	Books     []models.Book             // Resource hub books
	Articles  []models.Article          // Resource hub articles
	Videos    []models.Video            // Resource hub videos
	Hotlines  []models.Hotline          // Crisis hotlines
	Templates []models.ReminderTemplate // Reminder templates
	Errors    []EndpointResult          // Failed endpoint fetches
}

// DumpData is the serializable form of a [DumpResult].
type DumpData struct {
	Healthy   bool                      `json:"healthy"`
	Rooms     []models.SupportRoom      `json:"rooms,omitempty"`
	Books     []models.Book             `json:"books,omitempty"`
	Articles  []models.Article          `json:"articles,omitempty"`
	Videos    []models.Video            `json:"videos,omitempty"`
	Hotlines  []models.Hotline          `json:"hotlines,omitempty"`
	Templates []models.ReminderTemplate `json:"templates,omitempty"`
	Errors    []string                  `json:"errors,omitempty"`
}

// Data converts the result for JSON output.
func (r *DumpResult) Data() DumpData {
	data := DumpData{
		Healthy:   r.Healthy,
		Rooms:     r.Rooms,
		Books:     r.Books,
		Articles:  r.Articles,
		Videos:    r.Videos,
		Hotlines:  r.Hotlines,
		Templates: r.Templates,
	}

	for _, failure := range r.Errors {
		data.Errors = append(data.Errors, fmt.Sprintf("%s: %v", failure.Endpoint, failure.Error))
	}

	return data
}

// SyncResult summarizes a cache sync run.
type SyncResult struct {
	JournalSynced  int // Journal entries newly cached
	JournalSkipped int // Journal entries already cached
	MoodSynced     int // Mood entries newly cached
	MoodSkipped    int // Mood entries already cached
}

// catalogOperation pairs a fetch with its progress metadata.
type catalogOperation struct {
	name    string
	phase   Phase
	message string
	fetch   func(ctx context.Context) error
}

// JournalCache persists fetched journal entries. Implemented by
// repositories.JournalRepository.
type JournalCache interface {
	GetByRemoteID(remoteID int) (*models.CachedJournalEntry, error)
	Create(entry *models.CachedJournalEntry) error
}

// MoodCache persists fetched mood entries. Implemented by
// repositories.MoodRepository.
type MoodCache interface {
	GetByRemoteID(remoteID int) (*models.CachedMoodEntry, error)
	Create(entry *models.CachedMoodEntry) error
}

// Engine defines the orchestrated backend operations.
type Engine interface {
	// Dump fetches the shared catalogs: health, rooms, resources, templates.
	Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error)

	// SyncLocal pulls journal and mood entries into the local cache,
	// skipping entries already cached.
	SyncLocal(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error)

	// BulkExport writes journal and mood data to files in the requested format.
	BulkExport(ctx context.Context, progress chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error)
}

// CareEngine implements [Engine] on top of the typed backend services and
// the optional local cache repositories.
type CareEngine struct {
	svcs    *services.Services
	journal JournalCache
	mood    MoodCache
}

// NewCareEngine creates a CareEngine. The caches may be nil, in which case
// SyncLocal is unavailable.
func NewCareEngine(svcs *services.Services, journal JournalCache, mood MoodCache) *CareEngine {
	return &CareEngine{svcs: svcs, journal: journal, mood: mood}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CareEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Dump fetches the backend's shared catalogs. Individual endpoint failures
// are collected rather than aborting the run.
func (e *CareEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.svcs == nil {
		return nil, fmt.Errorf("%w: services not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{Errors: []EndpointResult{}}

	result.Healthy = e.svcs.API.Health(ctx)

	operations := []catalogOperation{
		{name: "rooms", phase: FetchRooms, message: "Fetching support rooms...", fetch: func(ctx context.Context) error {
			rooms, err := e.svcs.Support.Rooms(ctx)
			result.Rooms = rooms
			return err
		}},
		{name: "books", phase: FetchResources, message: "Fetching books...", fetch: func(ctx context.Context) error {
			books, err := e.svcs.Resources.Books(ctx)
			result.Books = books
			return err
		}},
		{name: "articles", phase: FetchResources, message: "Fetching articles...", fetch: func(ctx context.Context) error {
			articles, err := e.svcs.Resources.Articles(ctx)
			result.Articles = articles
			return err
		}},
		{name: "videos", phase: FetchResources, message: "Fetching videos...", fetch: func(ctx context.Context) error {
			videos, err := e.svcs.Resources.Videos(ctx)
			result.Videos = videos
			return err
		}},
		{name: "hotlines", phase: FetchResources, message: "Fetching hotlines...", fetch: func(ctx context.Context) error {
			hotlines, err := e.svcs.Resources.Hotlines(ctx)
			result.Hotlines = hotlines
			return err
		}},
		{name: "templates", phase: FetchTemplates, message: "Fetching reminder templates...", fetch: func(ctx context.Context) error {
			templates, err := e.svcs.Reminders.Templates(ctx)
			result.Templates = templates
			return err
		}},
	}

	totalSteps := len(operations) + 1

	e.sendProgress(progress, operationUpdate(catalogOperation{phase: FetchHealth, message: "Probing backend health..."}, 1, totalSteps))

	for i, op := range operations {
		e.sendProgress(progress, operationUpdate(op, i+2, totalSteps))

		if err := op.fetch(ctx); err != nil {
			result.Errors = append(result.Errors, EndpointResult{Endpoint: op.name, Error: err})
		}
	}

	return result, nil
}

// syncPageSize bounds each backend page during SyncLocal.
const syncPageSize = 100

// SyncLocal pulls journal and mood entries into the local cache.
func (e *CareEngine) SyncLocal(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.svcs == nil {
		return nil, fmt.Errorf("%w: services not initialized", shared.ErrServiceUnavailable)
	}
	if e.journal == nil || e.mood == nil {
		return nil, fmt.Errorf("%w: local cache not initialized", shared.ErrServiceUnavailable)
	}

	result := &SyncResult{}

	e.sendProgress(progress, syncJournalUpdate(1, 2))

	for skip := 0; ; skip += syncPageSize {
		entries, err := e.svcs.Journal.List(ctx, skip, syncPageSize)
		if err != nil {
			return result, fmt.Errorf("fetching journal entries: %w", err)
		}

		for _, entry := range entries {
			cached, err := e.cacheJournalEntry(entry)
			if err != nil {
				return result, err
			}
			if cached {
				result.JournalSynced++
			} else {
				result.JournalSkipped++
			}
		}

		if len(entries) < syncPageSize {
			break
		}
	}

	e.sendProgress(progress, syncMoodUpdate(2, 2))

	for skip := 0; ; skip += syncPageSize {
		entries, err := e.svcs.Mood.List(ctx, skip, syncPageSize)
		if err != nil {
			return result, fmt.Errorf("fetching mood entries: %w", err)
		}

		for _, entry := range entries {
			cached, err := e.cacheMoodEntry(entry)
			if err != nil {
				return result, err
			}
			if cached {
				result.MoodSynced++
			} else {
				result.MoodSkipped++
			}
		}

		if len(entries) < syncPageSize {
			break
		}
	}

	return result, nil
}

// cacheJournalEntry stores an entry unless its backend ID is already cached.
func (e *CareEngine) cacheJournalEntry(entry models.JournalEntry) (bool, error) {
	_, err := e.journal.GetByRemoteID(entry.ID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, shared.ErrEntryNotFound) {
		return false, fmt.Errorf("checking journal cache: %w", err)
	}

	if err := e.journal.Create(models.NewCachedJournalEntry(0, entry)); err != nil {
		return false, fmt.Errorf("caching journal entry %d: %w", entry.ID, err)
	}

	return true, nil
}

// cacheMoodEntry stores an entry unless its backend ID is already cached.
func (e *CareEngine) cacheMoodEntry(entry models.MoodEntry) (bool, error) {
	_, err := e.mood.GetByRemoteID(entry.ID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, shared.ErrEntryNotFound) {
		return false, fmt.Errorf("checking mood cache: %w", err)
	}

	if err := e.mood.Create(models.NewCachedMoodEntry(0, entry)); err != nil {
		return false, fmt.Errorf("caching mood entry %d: %w", entry.ID, err)
	}

	return true, nil
}
