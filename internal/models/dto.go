// Backend API response types
//
// Field names mirror the JSON produced by the grief-support REST backend.
package models

import "time"

// Token is the bearer credential returned by the login endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User represents an account, anonymous or registered.
type User struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	IsActive    bool      `json:"is_active"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatExchange is a single message/response pair from the AI chatbot.
type ChatExchange struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

// ChatHistoryItem is one stored conversation turn.
type ChatHistoryItem struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalEntry represents a journal entry, text or voice.
type JournalEntry struct {
	ID                 int        `json:"id"`
	UserID             int        `json:"user_id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	IsVoiceEntry       bool       `json:"is_voice_entry"`
	VoiceRecordingPath string     `json:"voice_recording_path,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// MoodEntry represents a logged mood on a 1-10 scale.
type MoodEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MoodValue float64   `json:"mood_value"`
	MoodEmoji string    `json:"mood_emoji,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportRoom is a peer-support chat space.
type SupportRoom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupportMessage is one message in a support room's history.
type SupportMessage struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder is a scheduled encouragement or check-in.
type Reminder struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	ScheduledTime     time.Time `json:"scheduled_time"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern string    `json:"recurrence_pattern,omitempty"`
}

// ReminderTemplate is a predefined reminder suggestion.
type ReminderTemplate struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	SuggestedTime string `json:"suggested_time"`
	Recurrence    string `json:"recurrence"`
}

// Book is a recommended grief support book from the resource hub.
type Book struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	AmazonLink  string  `json:"amazon_link"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
}

// Article is a recommended grief support article.
type Article struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ReadTime    string `json:"read_time,omitempty"`
	Category    string `json:"category"`
}

// Video is a recommended grief support video.
type Video struct {
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Duration    string `json:"duration,omitempty"`
	Category    string `json:"category"`
}

// Hotline is a crisis support phone line.
type Hotline struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	Availability string `json:"availability,omitempty"`
	Country      string `json:"country,omitempty"`
}

// WeeklyTrend is one week's aggregate in the dashboard analytics.
type WeeklyTrend struct {
	Week         string  `json:"week"`
	AverageMood  float64 `json:"average_mood"`
	EntriesCount int     `json:"entries_count"`
}

// MoodAnalytics summarizes mood activity over the last 30 days.
type MoodAnalytics struct {
	AverageMood30Days float64       `json:"average_mood_30_days"`
	TotalMoodEntries  int           `json:"total_mood_entries"`
	WeeklyTrends      []WeeklyTrend `json:"weekly_trends"`
}

// JournalAnalytics summarizes journaling activity over the last 30 days.
type JournalAnalytics struct {
	TotalEntries30Days int `json:"total_entries_30_days"`
	VoiceEntries       int `json:"voice_entries"`
	TextEntries        int `json:"text_entries"`
}

// Engagement tracks active days and the current streak.
type Engagement struct {
	DaysActive int `json:"days_active"`
	StreakDays int `json:"streak_days"`
}

// Dashboard is the combined analytics payload.
type Dashboard struct {
	MoodAnalytics    MoodAnalytics    `json:"mood_analytics"`
	JournalAnalytics JournalAnalytics `json:"journal_analytics"`
	Engagement       Engagement       `json:"engagement"`
}
