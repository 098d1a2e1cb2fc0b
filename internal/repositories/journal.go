package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// JournalRepository implements models.Repository[*models.CachedJournalEntry]
// for the offline journal cache.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new JournalRepository with the given database connection
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new cached entry with generated ID and sequence
func (r *JournalRepository) Create(entry *models.CachedJournalEntry) error {
	sequence, err := NextSequence(r.db, "journal_entries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO journal_entries (id, sequence, remote_id, title, content, is_voice_entry, remote_created_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.RemoteID(),
		entry.Title(),
		entry.Content(),
		entry.IsVoiceEntry(),
		entry.RemoteCreatedAt(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	return nil
}

// Get retrieves a cached entry by ID, excluding soft-deleted entries
func (r *JournalRepository) Get(id string) (*models.CachedJournalEntry, error) {
	query := `
		SELECT id, sequence, remote_id, title, content, is_voice_entry, remote_created_at, created_at, updated_at, deleted_at
		FROM journal_entries
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached entry by its backend ID, used for
// deduplication during sync
func (r *JournalRepository) GetByRemoteID(remoteID int) (*models.CachedJournalEntry, error) {
	query := `
		SELECT id, sequence, remote_id, title, content, is_voice_entry, remote_created_at, created_at, updated_at, deleted_at
		FROM journal_entries
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached entry
func (r *JournalRepository) Update(entry *models.CachedJournalEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE journal_entries
		SET title = ?, content = ?, is_voice_entry = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		entry.Title(),
		entry.Content(),
		entry.IsVoiceEntry(),
		now,
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, entry.ID())
	}

	return nil
}

// Delete soft-deletes a cached entry by ID
func (r *JournalRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE journal_entries
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, id)
	}

	return nil
}

// List retrieves cached entries matching the given criteria, excluding
// soft-deleted entries, newest backend entries first
func (r *JournalRepository) List(criteria map[string]any) ([]*models.CachedJournalEntry, error) {
	query := `
		SELECT id, sequence, remote_id, title, content, is_voice_entry, remote_created_at, created_at, updated_at, deleted_at
		FROM journal_entries
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if voice, ok := criteria["is_voice_entry"].(bool); ok {
		query += " AND is_voice_entry = ?"
		args = append(args, voice)
	}

	query += " ORDER BY remote_created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CachedJournalEntry
	for rows.Next() {
		entry, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *JournalRepository) scanOne(row *sql.Row) (*models.CachedJournalEntry, error) {
	entry, err := scanJournalEntry(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrEntryNotFound
	}

	return entry, err
}

func (r *JournalRepository) scanRow(rows *sql.Rows) (*models.CachedJournalEntry, error) {
	return scanJournalEntry(rows)
}

func scanJournalEntry(row rowScanner) (*models.CachedJournalEntry, error) {
	var (
		id              string
		sequence        int
		remoteID        int
		title           string
		content         sql.NullString
		isVoiceEntry    bool
		remoteCreatedAt time.Time
		createdAt       time.Time
		updatedAt       time.Time
		deletedAt       sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &title, &content, &isVoiceEntry, &remoteCreatedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entry: %w", err)
	}

	dto := models.JournalEntry{
		ID:           remoteID,
		Title:        title,
		Content:      content.String,
		IsVoiceEntry: isVoiceEntry,
		CreatedAt:    remoteCreatedAt,
	}

	entry := models.NewCachedJournalEntry(sequence, dto)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
