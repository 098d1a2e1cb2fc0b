package models

import (
	"fmt"
	"time"
)

var (
	_ Model = (*CachedJournalEntry)(nil)
	_ Model = (*CachedMoodEntry)(nil)
)

// CachedJournalEntry is a journal entry mirrored from the backend into the
// local SQLite cache for offline reading and export.
type CachedJournalEntry struct {
	id              string
	sequence        int
	remoteID        int
	title           string
	content         string
	isVoiceEntry    bool
	remoteCreatedAt time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewCachedJournalEntry creates a cache row from a backend [JournalEntry].
func NewCachedJournalEntry(sequence int, entry JournalEntry) *CachedJournalEntry {
	now := time.Now()
	return &CachedJournalEntry{
		sequence:        sequence,
		remoteID:        entry.ID,
		title:           entry.Title,
		content:         entry.Content,
		isVoiceEntry:    entry.IsVoiceEntry,
		remoteCreatedAt: entry.CreatedAt,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (e *CachedJournalEntry) ID() string                 { return e.id }
func (e *CachedJournalEntry) Sequence() int              { return e.sequence }
func (e *CachedJournalEntry) RemoteID() int              { return e.remoteID }
func (e *CachedJournalEntry) Title() string              { return e.title }
func (e *CachedJournalEntry) Content() string            { return e.content }
func (e *CachedJournalEntry) IsVoiceEntry() bool         { return e.isVoiceEntry }
func (e *CachedJournalEntry) RemoteCreatedAt() time.Time { return e.remoteCreatedAt }
func (e *CachedJournalEntry) CreatedAt() time.Time       { return e.createdAt }
func (e *CachedJournalEntry) UpdatedAt() time.Time       { return e.updatedAt }
func (e *CachedJournalEntry) DeletedAt() *time.Time      { return e.deletedAt }

func (e *CachedJournalEntry) SetID(id string)              { e.id = id }
func (e *CachedJournalEntry) SetUpdatedAt(t time.Time)     { e.updatedAt = t }
func (e *CachedJournalEntry) SetDeletedAt(t *time.Time)    { e.deletedAt = t }
func (e *CachedJournalEntry) SetCreatedAt(t time.Time)     { e.createdAt = t }
func (e *CachedJournalEntry) SetRemoteCreated(t time.Time) { e.remoteCreatedAt = t }

// Entry converts the cache row back to the backend DTO shape.
func (e *CachedJournalEntry) Entry() JournalEntry {
	return JournalEntry{
		ID:           e.remoteID,
		Title:        e.title,
		Content:      e.content,
		IsVoiceEntry: e.isVoiceEntry,
		CreatedAt:    e.remoteCreatedAt,
	}
}

// Validate checks required fields.
func (e *CachedJournalEntry) Validate() error {
	if e.id == "" {
		return fmt.Errorf("journal entry ID is required")
	}
	if e.title == "" {
		return fmt.Errorf("journal entry title is required")
	}
	if e.remoteID <= 0 {
		return fmt.Errorf("journal entry remote ID is required")
	}
	return nil
}

// CachedMoodEntry is a mood entry mirrored from the backend into the local
// SQLite cache.
type CachedMoodEntry struct {
	id              string
	sequence        int
	remoteID        int
	moodValue       float64
	moodEmoji       string
	notes           string
	remoteCreatedAt time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewCachedMoodEntry creates a cache row from a backend [MoodEntry].
func NewCachedMoodEntry(sequence int, entry MoodEntry) *CachedMoodEntry {
	now := time.Now()
	return &CachedMoodEntry{
		sequence:        sequence,
		remoteID:        entry.ID,
		moodValue:       entry.MoodValue,
		moodEmoji:       entry.MoodEmoji,
		notes:           entry.Notes,
		remoteCreatedAt: entry.CreatedAt,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (e *CachedMoodEntry) ID() string                 { return e.id }
func (e *CachedMoodEntry) Sequence() int              { return e.sequence }
func (e *CachedMoodEntry) RemoteID() int              { return e.remoteID }
func (e *CachedMoodEntry) MoodValue() float64         { return e.moodValue }
func (e *CachedMoodEntry) MoodEmoji() string          { return e.moodEmoji }
func (e *CachedMoodEntry) Notes() string              { return e.notes }
func (e *CachedMoodEntry) RemoteCreatedAt() time.Time { return e.remoteCreatedAt }
func (e *CachedMoodEntry) CreatedAt() time.Time       { return e.createdAt }
func (e *CachedMoodEntry) UpdatedAt() time.Time       { return e.updatedAt }
func (e *CachedMoodEntry) DeletedAt() *time.Time      { return e.deletedAt }

func (e *CachedMoodEntry) SetID(id string)              { e.id = id }
func (e *CachedMoodEntry) SetUpdatedAt(t time.Time)     { e.updatedAt = t }
func (e *CachedMoodEntry) SetDeletedAt(t *time.Time)    { e.deletedAt = t }
func (e *CachedMoodEntry) SetCreatedAt(t time.Time)     { e.createdAt = t }
func (e *CachedMoodEntry) SetRemoteCreated(t time.Time) { e.remoteCreatedAt = t }

// Entry converts the cache row back to the backend DTO shape.
func (e *CachedMoodEntry) Entry() MoodEntry {
	return MoodEntry{
		ID:        e.remoteID,
		MoodValue: e.moodValue,
		MoodEmoji: e.moodEmoji,
		Notes:     e.notes,
		CreatedAt: e.remoteCreatedAt,
	}
}

// Validate checks required fields and the 1-10 mood scale.
func (e *CachedMoodEntry) Validate() error {
	if e.id == "" {
		return fmt.Errorf("mood entry ID is required")
	}
	if e.remoteID <= 0 {
		return fmt.Errorf("mood entry remote ID is required")
	}
	if e.moodValue < 1 || e.moodValue > 10 {
		return fmt.Errorf("mood value must be between 1 and 10, got %v", e.moodValue)
	}
	return nil
}
