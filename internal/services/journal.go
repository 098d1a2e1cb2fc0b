// Journal entry management against the journal router
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// JournalService manages text and voice journal entries.
type JournalService struct {
	api *client.Client
}

type journalEntryPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create writes a new text entry.
func (s *JournalService) Create(ctx context.Context, title, content string) (*models.JournalEntry, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	var entry models.JournalEntry

	payload := journalEntryPayload{Title: title, Content: content}
	if err := s.api.Post(ctx, "/journal/entries", payload, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// CreateVoice uploads an audio recording as a voice entry. The title rides
// in the multipart form alongside the file part.
func (s *JournalService) CreateVoice(ctx context.Context, title, filename string, audio io.Reader) (*models.JournalEntry, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	var entry models.JournalEntry

	req := client.Request{
		Method: http.MethodPost,
		Path:   "/journal/entries/voice",
		Multipart: &client.MultipartPayload{
			Field:    "voice_file",
			Filename: filename,
			Reader:   audio,
			Fields:   map[string]string{"title": title},
		},
	}
	if err := s.api.Do(ctx, req, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// List returns the user's entries, newest first.
func (s *JournalService) List(ctx context.Context, skip, limit int) ([]models.JournalEntry, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var entries []models.JournalEntry

	if err := s.api.Get(ctx, "/journal/entries", query, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Get fetches one entry by ID.
func (s *JournalService) Get(ctx context.Context, entryID int) (*models.JournalEntry, error) {
	var entry models.JournalEntry

	if err := s.api.Get(ctx, fmt.Sprintf("/journal/entries/%d", entryID), nil, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Delete removes one entry by ID.
func (s *JournalService) Delete(ctx context.Context, entryID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/journal/entries/%d", entryID), nil)
}
