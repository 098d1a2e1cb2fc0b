// Mood logging and analytics against the mood router
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// MoodService records moods on a 1-10 scale and reads the mood analytics.
type MoodService struct {
	api *client.Client
}

type moodEntryPayload struct {
	MoodValue float64 `json:"mood_value"`
	MoodEmoji string  `json:"mood_emoji,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// DailyMood is one day's aggregate in the weekly breakdown.
type DailyMood struct {
	Date        string  `json:"date"`
	AverageMood float64 `json:"average_mood"`
}

// WeeklyMoodAnalytics is the weekly analytics payload. Trend is one of
// "improving", "declining", "stable", or "no_data".
type WeeklyMoodAnalytics struct {
	Average        float64     `json:"average"`
	EntriesCount   int         `json:"entries_count"`
	Trend          string      `json:"trend"`
	DailyBreakdown []DailyMood `json:"daily_breakdown,omitempty"`
}

// WeeklyAverage is one week's aggregate in the monthly breakdown.
type WeeklyAverage struct {
	Week         int     `json:"week"`
	Average      float64 `json:"average"`
	EntriesCount int     `json:"entries_count"`
}

// MonthlyMoodAnalytics is the monthly analytics payload.
type MonthlyMoodAnalytics struct {
	Average        float64           `json:"average"`
	EntriesCount   int               `json:"entries_count"`
	WeeklyAverages []WeeklyAverage   `json:"weekly_averages"`
	BestDay        *models.MoodEntry `json:"best_day,omitempty"`
	ChallengingDay *models.MoodEntry `json:"challenging_day,omitempty"`
}

// Log records a mood entry. The backend also enforces the range; checking
// here keeps an obviously bad value from burning a round trip.
func (s *MoodService) Log(ctx context.Context, value float64, emoji, notes string) (*models.MoodEntry, error) {
	if value < 1 || value > 10 {
		return nil, fmt.Errorf("%w: mood value must be between 1 and 10", shared.ErrInvalidInput)
	}

	var entry models.MoodEntry

	payload := moodEntryPayload{MoodValue: value, MoodEmoji: emoji, Notes: notes}
	if err := s.api.Post(ctx, "/mood/entries", payload, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// List returns logged moods, newest first.
func (s *MoodService) List(ctx context.Context, skip, limit int) ([]models.MoodEntry, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var entries []models.MoodEntry

	if err := s.api.Get(ctx, "/mood/entries", query, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Today returns today's mood entry. The backend answers 404 when nothing
// was logged yet, surfaced here as [shared.ErrEntryNotFound].
func (s *MoodService) Today(ctx context.Context) (*models.MoodEntry, error) {
	var entry models.MoodEntry

	if err := s.api.Get(ctx, "/mood/entries/today", nil, &entry); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, fmt.Errorf("%w: no mood logged today", shared.ErrEntryNotFound)
		}

		return nil, err
	}

	return &entry, nil
}

// Weekly returns the last seven days of mood analytics.
func (s *MoodService) Weekly(ctx context.Context) (*WeeklyMoodAnalytics, error) {
	var analytics WeeklyMoodAnalytics

	if err := s.api.Get(ctx, "/mood/analytics/weekly", nil, &analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}

// Monthly returns the last thirty days of mood analytics.
func (s *MoodService) Monthly(ctx context.Context) (*MonthlyMoodAnalytics, error) {
	var analytics MonthlyMoodAnalytics

	if err := s.api.Get(ctx, "/mood/analytics/monthly", nil, &analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}
