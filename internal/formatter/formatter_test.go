package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/solace-cli/solace/internal/models"
	solacetest "github.com/solace-cli/solace/internal/testing"
)

func sampleJournal() []models.JournalEntry {
	return []models.JournalEntry{
		{
			ID:        1,
			Title:     "For Mom",
			Content:   "I visited the garden today.",
			CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           2,
			Title:        "Voice note",
			IsVoiceEntry: true,
			CreatedAt:    time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func sampleMoods() []models.MoodEntry {
	return []models.MoodEntry{
		{ID: 1, MoodValue: 6.5, MoodEmoji: "🌤", Notes: "a lighter day", CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, MoodValue: 4, Notes: "", CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)},
	}
}

func TestExportJournalToCSV(t *testing.T) {
	data, err := ExportJournalToCSV(sampleJournal())
	if err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(records))
	}

	if records[0][0] != "ID" || records[0][3] != "Type" {
		t.Errorf("unexpected headers: %v", records[0])
	}

	if records[1][2] != "For Mom" || records[1][3] != "text" {
		t.Errorf("unexpected first record: %v", records[1])
	}

	if records[2][3] != "voice" {
		t.Errorf("expected voice type for second record, got %v", records[2])
	}
}

func TestExportMoodToCSV(t *testing.T) {
	data, err := ExportMoodToCSV(sampleMoods())
	if err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(records))
	}

	if records[1][2] != "6.5" {
		t.Errorf("expected mood value 6.5, got %q", records[1][2])
	}
}

func TestExportJournalToMarkdown(t *testing.T) {
	data, err := ExportJournalToMarkdown(sampleJournal(), "My Journal")
	if err != nil {
		t.Fatalf("failed to export Markdown: %v", err)
	}

	md := string(data)

	if !strings.HasPrefix(md, "# My Journal\n") {
		t.Errorf("expected document title, got %q", md[:30])
	}

	if !strings.Contains(md, "## For Mom") {
		t.Error("expected entry heading in Markdown output")
	}

	if !strings.Contains(md, "(voice entry)") {
		t.Error("expected voice entry marker in Markdown output")
	}
}

func TestExportMoodToMarkdown(t *testing.T) {
	data, err := ExportMoodToMarkdown(sampleMoods(), "")
	if err != nil {
		t.Fatalf("failed to export Markdown: %v", err)
	}

	md := string(data)

	if !strings.Contains(md, "# Mood Log") {
		t.Error("expected default title in Markdown output")
	}

	if !strings.Contains(md, "| Date | Mood | Notes |") {
		t.Error("expected table header in Markdown output")
	}

	if !strings.Contains(md, "6.5 🌤") {
		t.Error("expected mood value with emoji in table")
	}
}

func TestExportJournalToText(t *testing.T) {
	data, err := ExportJournalToText(sampleJournal())
	if err != nil {
		t.Fatalf("failed to export text: %v", err)
	}

	text := string(data)

	if !strings.Contains(text, "Journal entries: 2") {
		t.Error("expected entry count in text output")
	}

	if !strings.Contains(text, "1. [2026-08-01 10:00] For Mom") {
		t.Errorf("expected numbered entry line, got %q", text)
	}
}

func TestWriteJournalCSVExport(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "journal")

	result, err := WriteJournalCSVExport(sampleJournal(), base)
	if err != nil {
		t.Fatalf("failed to write export: %v", err)
	}

	solacetest.AssertFileExists(t, result.EntriesFile)
	solacetest.AssertFileExists(t, result.MetadataFile)

	metadata := solacetest.MustReadFile(t, result.MetadataFile)
	if !strings.Contains(metadata, `"voice_entries": 1`) {
		t.Errorf("expected voice entry count in metadata, got %s", metadata)
	}
}

func TestWriteMoodCSVExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moods.csv")

	written, err := WriteMoodCSVExport(sampleMoods(), path)
	if err != nil {
		t.Fatalf("failed to write export: %v", err)
	}

	if written != path {
		t.Errorf("expected path %s, got %s", path, written)
	}

	solacetest.AssertFileExists(t, path)
}

func TestWriteBulkExportManifest(t *testing.T) {
	dir := t.TempDir()

	manifest := &BulkExportManifest{
		ExportedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Format:         "csv",
		JournalEntries: 2,
		MoodEntries:    2,
		Files:          []string{"journal_entries.csv", "mood_entries.csv"},
	}

	path, err := WriteBulkExportManifest(manifest, dir)
	if err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	content := solacetest.MustReadFile(t, path)
	if !strings.Contains(content, `"format": "csv"`) {
		t.Errorf("expected format in manifest, got %s", content)
	}
}
