package tasks

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solace-cli/solace/internal/models"
	solacetest "github.com/solace-cli/solace/internal/testing"
)

func sampleEntry(id int, title string) models.JournalEntry {
	return models.JournalEntry{ID: id, Title: title}
}

func TestBulkExport(t *testing.T) {
	t.Run("json format writes one file per journal entry plus mood CSV", func(t *testing.T) {
		svcs, server := newTestServices(t, journalMoodHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)
		dir := t.TempDir()

		result, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.TotalEntries != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected result counts: %+v", result)
		}
		if result.MoodEntries != 1 {
			t.Errorf("expected 1 mood entry, got %d", result.MoodEntries)
		}

		solacetest.AssertFileExists(t, filepath.Join(dir, "mood_entries.csv"))
		solacetest.AssertFileExists(t, filepath.Join(dir, "entry_1_for-mom.json"))
		solacetest.AssertFileExists(t, filepath.Join(dir, "entry_2_voice-note.json"))
		solacetest.AssertFileExists(t, result.ManifestPath)

		manifest := solacetest.MustReadFile(t, result.ManifestPath)
		if !strings.Contains(manifest, `"format": "json"`) {
			t.Errorf("expected format in manifest, got %s", manifest)
		}
	})

	t.Run("markdown format writes entry documents", func(t *testing.T) {
		svcs, server := newTestServices(t, journalMoodHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)
		dir := t.TempDir()

		result, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{
			Format:    "markdown",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.SuccessfulExports != 2 {
			t.Errorf("expected 2 exports, got %d", result.SuccessfulExports)
		}

		content := solacetest.MustReadFile(t, filepath.Join(dir, "entry_1_for-mom.md"))
		if !strings.Contains(content, "# For Mom") {
			t.Errorf("expected Markdown title, got %s", content)
		}
	})

	t.Run("progress updates never block", func(t *testing.T) {
		svcs, server := newTestServices(t, journalMoodHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)

		progress := make(chan ProgressUpdate)

		if _, err := engine.BulkExport(context.Background(), progress, BulkExportOpts{
			Format:    "txt",
			OutputDir: t.TempDir(),
		}); err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
	})
}

func TestEntryFilename(t *testing.T) {
	cases := []struct {
		title string
		id    int
		want  string
	}{
		{"For Mom", 1, "entry_1_for-mom"},
		{"A day at the beach!", 2, "entry_2_a-day-at-the-beach"},
		{"   ", 3, "entry_3"},
		{"日記", 4, "entry_4"},
	}

	for _, tc := range cases {
		entry := sampleEntry(tc.id, tc.title)
		if got := entryFilename(entry); got != tc.want {
			t.Errorf("entryFilename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
