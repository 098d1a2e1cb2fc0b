// package formatter provides functions to export journal and mood data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

const dateLayout = "2006-01-02 15:04"

// ExportJournalToCSV converts journal entries to CSV with columns: ID, Date, Title, Type, Content
func ExportJournalToCSV(entries []models.JournalEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Title", "Type", "Content"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.ID),
			entry.CreatedAt.Format(dateLayout),
			entry.Title,
			entryType(entry),
			entry.Content,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportMoodToCSV converts mood entries to CSV with columns: ID, Date, Mood, Emoji, Notes
func ExportMoodToCSV(entries []models.MoodEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Mood", "Emoji", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.ID),
			entry.CreatedAt.Format(dateLayout),
			strconv.FormatFloat(entry.MoodValue, 'f', -1, 64),
			entry.MoodEmoji,
			entry.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportJournalToMarkdown converts journal entries to a Markdown document
func ExportJournalToMarkdown(entries []models.JournalEntry, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Journal"
	}

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(entries)))

	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf("## %s\n\n", entry.Title))
		buf.WriteString(fmt.Sprintf("*%s*", entry.CreatedAt.Format(dateLayout)))
		if entry.IsVoiceEntry {
			buf.WriteString(" (voice entry)")
		}
		buf.WriteString("\n\n")
		if entry.Content != "" {
			buf.WriteString(entry.Content)
			buf.WriteString("\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportMoodToMarkdown converts mood entries to a Markdown table
func ExportMoodToMarkdown(entries []models.MoodEntry, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Mood Log"
	}

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(entries)))
	buf.WriteString("| Date | Mood | Notes |\n")
	buf.WriteString("|------|------|-------|\n")

	for _, entry := range entries {
		mood := strconv.FormatFloat(entry.MoodValue, 'f', -1, 64)
		if entry.MoodEmoji != "" {
			mood += " " + entry.MoodEmoji
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", entry.CreatedAt.Format(dateLayout), mood, entry.Notes))
	}

	return buf.Bytes(), nil
}

// ExportJournalToText converts journal entries to plain text
func ExportJournalToText(entries []models.JournalEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Journal entries: %d\n\n", len(entries)))

	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, entry.CreatedAt.Format(dateLayout), entry.Title))
		if entry.Content != "" {
			buf.WriteString(entry.Content)
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func entryType(entry models.JournalEntry) string {
	if entry.IsVoiceEntry {
		return "voice"
	}

	return "text"
}

// journalMetadata summarizes an export for the accompanying JSON file
type journalMetadata struct {
	Entries      int       `json:"entries"`
	VoiceEntries int       `json:"voice_entries"`
	ExportedAt   time.Time `json:"exported_at"`
}

// CSVExportResult contains the paths of files created by WriteJournalCSVExport
type CSVExportResult struct {
	EntriesFile  string
	MetadataFile string
}

// WriteJournalCSVExport exports journal entries to CSV with an accompanying metadata JSON file.
//
// Creates {base}_entries.csv and {base}_metadata.json
func WriteJournalCSVExport(entries []models.JournalEntry, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "journal"
	}

	csvData, err := ExportJournalToCSV(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_entries.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	voice := 0
	for _, entry := range entries {
		if entry.IsVoiceEntry {
			voice++
		}
	}

	metadataJSON, err := shared.MarshalJSON(journalMetadata{Entries: len(entries), VoiceEntries: voice, ExportedAt: time.Now()}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{EntriesFile: entriesFile, MetadataFile: metadataFile}, nil
}

// WriteMoodCSVExport exports mood entries to {filepath}, defaulting to mood_entries.csv
func WriteMoodCSVExport(entries []models.MoodEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "mood_entries.csv"
	}

	csvData, err := ExportMoodToCSV(entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// BulkExportManifest describes the output of a bulk export run
type BulkExportManifest struct {
	ExportedAt     time.Time `json:"exported_at"`
	Format         string    `json:"format"`
	JournalEntries int       `json:"journal_entries"`
	MoodEntries    int       `json:"mood_entries"`
	Files          []string  `json:"files"`
	Errors         []string  `json:"errors,omitempty"`
}

// WriteBulkExportManifest writes the manifest JSON into dir, returning the file path
func WriteBulkExportManifest(manifest *BulkExportManifest, dir string) (string, error) {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	path := dir + "/manifest.json"
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest file: %w", err)
	}

	return path, nil
}
