// Engagement and mood trend analytics against the analytics router
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
)

// AnalyticsService reads the combined dashboard and detailed mood trends.
type AnalyticsService struct {
	api *client.Client
}

// TrendPoint is one day's aggregate in a mood trend series.
type TrendPoint struct {
	Date         string  `json:"date"`
	AverageMood  float64 `json:"average_mood"`
	EntriesCount int     `json:"entries_count"`
	MinMood      float64 `json:"min_mood"`
	MaxMood      float64 `json:"max_mood"`
}

// TrendSummary aggregates a mood trend series.
type TrendSummary struct {
	TotalEntries   int         `json:"total_entries"`
	OverallAverage float64     `json:"overall_average"`
	BestDay        *TrendPoint `json:"best_day,omitempty"`
	ChallengingDay *TrendPoint `json:"challenging_day,omitempty"`
}

// MoodTrends is the mood-trends payload over a requested period.
type MoodTrends struct {
	PeriodDays int          `json:"period_days"`
	TrendData  []TrendPoint `json:"trend_data"`
	Summary    TrendSummary `json:"summary"`
}

// Dashboard returns the combined mood, journal, and engagement analytics.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var dashboard models.Dashboard

	if err := s.api.Get(ctx, "/analytics/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}

	return &dashboard, nil
}

// MoodTrends returns daily mood aggregates over the last days days. Zero
// uses the backend default of 30.
func (s *AnalyticsService) MoodTrends(ctx context.Context, days int) (*MoodTrends, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var trends MoodTrends

	if err := s.api.Get(ctx, "/analytics/mood-trends", query, &trends); err != nil {
		return nil, err
	}

	return &trends, nil
}
