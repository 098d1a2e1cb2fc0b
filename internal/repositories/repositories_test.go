package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testJournalDTO(remoteID int) models.JournalEntry {
	return models.JournalEntry{
		ID:        remoteID,
		Title:     "For Mom",
		Content:   "I visited the garden today.",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func testMoodDTO(remoteID int, value float64) models.MoodEntry {
	return models.MoodEntry{
		ID:        remoteID,
		MoodValue: value,
		MoodEmoji: "🌤",
		Notes:     "a lighter day",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestJournalRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)
		entry := models.NewCachedJournalEntry(0, testJournalDTO(11))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		if entry.ID() == "" {
			t.Error("entry ID should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)
		entry := models.NewCachedJournalEntry(0, testJournalDTO(11))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		retrieved, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}

		if retrieved.Title() != "For Mom" {
			t.Errorf("expected title For Mom, got %s", retrieved.Title())
		}

		if retrieved.RemoteID() != 11 {
			t.Errorf("expected remote ID 11, got %d", retrieved.RemoteID())
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)
		entry := models.NewCachedJournalEntry(0, testJournalDTO(42))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		retrieved, err := repo.GetByRemoteID(42)
		if err != nil {
			t.Fatalf("failed to get entry by remote ID: %v", err)
		}

		if retrieved.ID() != entry.ID() {
			t.Errorf("expected ID %s, got %s", entry.ID(), retrieved.ID())
		}

		if _, err := repo.GetByRemoteID(999); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound for unknown remote ID, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)
		entry := models.NewCachedJournalEntry(0, testJournalDTO(11))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		updated := models.NewCachedJournalEntry(entry.Sequence(), models.JournalEntry{
			ID:        11,
			Title:     "For Mom, revised",
			Content:   entry.Content(),
			CreatedAt: entry.RemoteCreatedAt(),
		})
		updated.SetID(entry.ID())

		if err := repo.Update(updated); err != nil {
			t.Fatalf("failed to update entry: %v", err)
		}

		retrieved, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}

		if retrieved.Title() != "For Mom, revised" {
			t.Errorf("expected updated title, got %s", retrieved.Title())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)
		entry := models.NewCachedJournalEntry(0, testJournalDTO(11))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		if err := repo.Delete(entry.ID()); err != nil {
			t.Fatalf("failed to delete entry: %v", err)
		}

		if _, err := repo.Get(entry.ID()); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound after delete, got %v", err)
		}

		if err := repo.Delete(entry.ID()); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound on double delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJournalRepository(db)

		older := testJournalDTO(1)
		older.CreatedAt = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

		newer := testJournalDTO(2)
		newer.CreatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		newer.IsVoiceEntry = true

		for _, dto := range []models.JournalEntry{older, newer} {
			if err := repo.Create(models.NewCachedJournalEntry(0, dto)); err != nil {
				t.Fatalf("failed to create entry: %v", err)
			}
		}

		entries, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}

		if entries[0].RemoteID() != 2 {
			t.Errorf("expected newest entry first, got remote ID %d", entries[0].RemoteID())
		}

		voiceOnly, err := repo.List(map[string]any{"is_voice_entry": true})
		if err != nil {
			t.Fatalf("failed to list voice entries: %v", err)
		}

		if len(voiceOnly) != 1 || !voiceOnly[0].IsVoiceEntry() {
			t.Errorf("expected only the voice entry, got %d entries", len(voiceOnly))
		}
	})
}

func TestMoodRepository(t *testing.T) {
	t.Run("Create and Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMoodRepository(db)
		entry := models.NewCachedMoodEntry(0, testMoodDTO(7, 6.5))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		retrieved, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}

		if retrieved.MoodValue() != 6.5 {
			t.Errorf("expected mood value 6.5, got %f", retrieved.MoodValue())
		}

		if retrieved.Notes() != "a lighter day" {
			t.Errorf("expected notes to round-trip, got %s", retrieved.Notes())
		}
	})

	t.Run("Create rejects out-of-range values", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMoodRepository(db)
		entry := models.NewCachedMoodEntry(0, testMoodDTO(7, 12))

		if err := repo.Create(entry); err == nil {
			t.Error("expected validation to reject mood value 12")
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMoodRepository(db)
		entry := models.NewCachedMoodEntry(0, testMoodDTO(7, 6.5))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		retrieved, err := repo.GetByRemoteID(7)
		if err != nil {
			t.Fatalf("failed to get entry by remote ID: %v", err)
		}

		if retrieved.ID() != entry.ID() {
			t.Errorf("expected ID %s, got %s", entry.ID(), retrieved.ID())
		}
	})

	t.Run("List filters by since", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMoodRepository(db)

		older := testMoodDTO(1, 4)
		older.CreatedAt = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

		newer := testMoodDTO(2, 7)
		newer.CreatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		for _, dto := range []models.MoodEntry{older, newer} {
			if err := repo.Create(models.NewCachedMoodEntry(0, dto)); err != nil {
				t.Fatalf("failed to create entry: %v", err)
			}
		}

		recent, err := repo.List(map[string]any{"since": time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)})
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}

		if len(recent) != 1 || recent[0].RemoteID() != 2 {
			t.Errorf("expected only the recent entry, got %d entries", len(recent))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMoodRepository(db)
		entry := models.NewCachedMoodEntry(0, testMoodDTO(7, 6.5))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		if err := repo.Delete(entry.ID()); err != nil {
			t.Fatalf("failed to delete entry: %v", err)
		}

		if _, err := repo.Get(entry.ID()); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound after delete, got %v", err)
		}
	})

	t.Run("sequences increment per table", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		first, err := NextSequence(db, "mood_entries")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}

		second, err := NextSequence(db, "mood_entries")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}

		if second != first+1 {
			t.Errorf("expected sequence to increment, got %d then %d", first, second)
		}
	})
}
