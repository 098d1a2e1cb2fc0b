package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// MoodRepository implements models.Repository[*models.CachedMoodEntry] for
// the offline mood cache.
type MoodRepository struct {
	db *sql.DB
}

// NewMoodRepository creates a new MoodRepository with the given database connection
func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// Create inserts a new cached entry with generated ID and sequence
func (r *MoodRepository) Create(entry *models.CachedMoodEntry) error {
	sequence, err := NextSequence(r.db, "mood_entries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO mood_entries (id, sequence, remote_id, mood_value, mood_emoji, notes, remote_created_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.RemoteID(),
		entry.MoodValue(),
		entry.MoodEmoji(),
		entry.Notes(),
		entry.RemoteCreatedAt(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}

	return nil
}

// Get retrieves a cached entry by ID, excluding soft-deleted entries
func (r *MoodRepository) Get(id string) (*models.CachedMoodEntry, error) {
	query := `
		SELECT id, sequence, remote_id, mood_value, mood_emoji, notes, remote_created_at, created_at, updated_at, deleted_at
		FROM mood_entries
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached entry by its backend ID, used for
// deduplication during sync
func (r *MoodRepository) GetByRemoteID(remoteID int) (*models.CachedMoodEntry, error) {
	query := `
		SELECT id, sequence, remote_id, mood_value, mood_emoji, notes, remote_created_at, created_at, updated_at, deleted_at
		FROM mood_entries
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached entry
func (r *MoodRepository) Update(entry *models.CachedMoodEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE mood_entries
		SET mood_value = ?, mood_emoji = ?, notes = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		entry.MoodValue(),
		entry.MoodEmoji(),
		entry.Notes(),
		now,
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update mood entry: %w", err)
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
func (r *MoodRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE mood_entries
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
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
func (r *MoodRepository) List(criteria map[string]any) ([]*models.CachedMoodEntry, error) {
	query := `
		SELECT id, sequence, remote_id, mood_value, mood_emoji, notes, remote_created_at, created_at, updated_at, deleted_at
		FROM mood_entries
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if since, ok := criteria["since"].(time.Time); ok {
		query += " AND remote_created_at >= ?"
		args = append(args, since)
	}

	query += " ORDER BY remote_created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CachedMoodEntry
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

func (r *MoodRepository) scanOne(row *sql.Row) (*models.CachedMoodEntry, error) {
	entry, err := scanMoodEntry(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrEntryNotFound
	}

	return entry, err
}

func (r *MoodRepository) scanRow(rows *sql.Rows) (*models.CachedMoodEntry, error) {
	return scanMoodEntry(rows)
}

func scanMoodEntry(row rowScanner) (*models.CachedMoodEntry, error) {
	var (
		id              string
		sequence        int
		remoteID        int
		moodValue       float64
		moodEmoji       sql.NullString
		notes           sql.NullString
		remoteCreatedAt time.Time
		createdAt       time.Time
		updatedAt       time.Time
		deletedAt       sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &moodValue, &moodEmoji, &notes, &remoteCreatedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan mood entry: %w", err)
	}

	dto := models.MoodEntry{
		ID:        remoteID,
		MoodValue: moodValue,
		MoodEmoji: moodEmoji.String,
		Notes:     notes.String,
		CreatedAt: remoteCreatedAt,
	}

	entry := models.NewCachedMoodEntry(sequence, dto)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
