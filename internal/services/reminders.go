// Reminder scheduling against the reminders router
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// ReminderService schedules gentle check-ins and self-care reminders.
type ReminderService struct {
	api *client.Client
}

var recurrencePatterns = map[string]bool{"daily": true, "weekly": true, "monthly": true}

// Create schedules a reminder. A recurrence pattern of "daily", "weekly",
// or "monthly" makes it recurring; empty means one-shot. All parameters
// travel in the query string, matching the backend's primitive-parameter
// encoding.
func (s *ReminderService) Create(ctx context.Context, title, message string, scheduledTime time.Time, recurrence string) (*models.Reminder, error) {
	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", shared.ErrInvalidInput)
	}

	if recurrence != "" && !recurrencePatterns[recurrence] {
		return nil, fmt.Errorf("%w: recurrence must be daily, weekly, or monthly", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("title", title)
	query.Set("message", message)
	query.Set("scheduled_time", scheduledTime.Format(time.RFC3339))

	if recurrence != "" {
		query.Set("is_recurring", "true")
		query.Set("recurrence_pattern", recurrence)
	}

	var reminder models.Reminder

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/reminders/create", Query: query}, &reminder); err != nil {
		return nil, err
	}

	return &reminder, nil
}

// List returns the user's scheduled reminders.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder

	if err := s.api.Get(ctx, "/reminders/list", nil, &reminders); err != nil {
		return nil, err
	}

	return reminders, nil
}

// Delete cancels a reminder by ID.
func (s *ReminderService) Delete(ctx context.Context, reminderID int) error {
	return s.api.Delete(ctx, "/reminders/"+strconv.Itoa(reminderID), nil)
}

// Templates returns the predefined reminder suggestions.
func (s *ReminderService) Templates(ctx context.Context) ([]models.ReminderTemplate, error) {
	var templates []models.ReminderTemplate

	if err := s.api.Get(ctx, "/reminders/templates", nil, &templates); err != nil {
		return nil, err
	}

	return templates, nil
}
