package tasks

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/repositories"
	"github.com/solace-cli/solace/internal/services"
	"github.com/solace-cli/solace/internal/shared"
)

func newTestServices(t *testing.T, handler http.Handler) (*services.Services, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)

	api := client.New(client.Opts{
		Policy: client.Policy{
			BaseURLs:    []string{server.URL},
			MaxAttempts: 1,
		},
		Logger: log.New(io.Discard),
	})

	return services.New(api, log.New(io.Discard)), server
}

func newTestCache(t *testing.T) (*sql.DB, *repositories.JournalRepository, *repositories.MoodRepository) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db, repositories.NewJournalRepository(db), repositories.NewMoodRepository(db)
}

func catalogHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.HandleFunc("/api/support/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "general", "name": "General Support", "description": "Open discussion for all"}]`))
	})
	mux.HandleFunc("/api/resources/books", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "Option B", "author": "Sheryl Sandberg", "rating": 4.5}]`))
	})
	mux.HandleFunc("/api/resources/articles", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/resources/videos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/resources/hotlines", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "988 Suicide & Crisis Lifeline", "phone": "988", "description": "24/7"}]`))
	})
	mux.HandleFunc("/api/reminders/templates", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "Daily Check-in", "message": "How are you feeling today?", "suggested_time": "09:00", "recurrence": "daily"}]`))
	})
	return mux
}

func journalMoodHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/journal/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") != "" && r.URL.Query().Get("skip") != "0" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[
			{"id": 1, "title": "For Mom", "content": "I visited the garden today.", "is_voice_entry": false, "created_at": "2026-08-01T10:00:00Z"},
			{"id": 2, "title": "Voice note", "is_voice_entry": true, "created_at": "2026-08-02T09:30:00Z"}
		]`))
	})
	mux.HandleFunc("/api/mood/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") != "" && r.URL.Query().Get("skip") != "0" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id": 5, "mood_value": 6.5, "mood_emoji": "🌤", "notes": "a lighter day", "created_at": "2026-08-01T10:00:00Z"}]`))
	})
	return mux
}

func TestDump(t *testing.T) {
	t.Run("fetches every catalog", func(t *testing.T) {
		svcs, server := newTestServices(t, catalogHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)

		result, err := engine.Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("dump failed: %v", err)
		}

		if !result.Healthy {
			t.Error("expected healthy backend")
		}
		if len(result.Rooms) != 1 || result.Rooms[0].ID != "general" {
			t.Errorf("expected general room, got %v", result.Rooms)
		}
		if len(result.Hotlines) != 1 || result.Hotlines[0].Phone != "988" {
			t.Errorf("expected crisis hotline, got %v", result.Hotlines)
		}
		if len(result.Templates) != 1 {
			t.Errorf("expected one template, got %d", len(result.Templates))
		}
		if len(result.Errors) != 0 {
			t.Errorf("expected no endpoint errors, got %v", result.Errors)
		}
	})

	t.Run("collects endpoint failures without aborting", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "healthy"}`))
		})
		mux.HandleFunc("/api/support/rooms", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": "general", "name": "General Support", "description": ""}]`))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "catalog unavailable"}`))
		})

		svcs, server := newTestServices(t, mux)
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)

		result, err := engine.Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("dump failed: %v", err)
		}

		if len(result.Rooms) != 1 {
			t.Errorf("expected rooms to survive other failures, got %v", result.Rooms)
		}
		if len(result.Errors) != 5 {
			t.Errorf("expected 5 failed catalogs, got %d", len(result.Errors))
		}

		data := result.Data()
		if len(data.Errors) != 5 {
			t.Errorf("expected serialized errors, got %v", data.Errors)
		}
	})

	t.Run("reports progress without blocking", func(t *testing.T) {
		svcs, server := newTestServices(t, catalogHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)

		// Unbuffered channel nobody reads; sendProgress must skip, not block.
		progress := make(chan ProgressUpdate)

		if _, err := engine.Dump(context.Background(), progress); err != nil {
			t.Fatalf("dump failed: %v", err)
		}
	})
}

func TestSyncLocal(t *testing.T) {
	t.Run("caches fetched entries and skips duplicates on rerun", func(t *testing.T) {
		svcs, server := newTestServices(t, journalMoodHandler())
		defer server.Close()

		db, journal, mood := newTestCache(t)
		defer db.Close()

		engine := NewCareEngine(svcs, journal, mood)

		first, err := engine.SyncLocal(context.Background(), nil)
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if first.JournalSynced != 2 || first.MoodSynced != 1 {
			t.Errorf("expected 2 journal and 1 mood synced, got %+v", first)
		}

		second, err := engine.SyncLocal(context.Background(), nil)
		if err != nil {
			t.Fatalf("second sync failed: %v", err)
		}

		if second.JournalSynced != 0 || second.JournalSkipped != 2 {
			t.Errorf("expected rerun to skip cached journal entries, got %+v", second)
		}
		if second.MoodSynced != 0 || second.MoodSkipped != 1 {
			t.Errorf("expected rerun to skip cached mood entries, got %+v", second)
		}

		entries, err := journal.List(nil)
		if err != nil {
			t.Fatalf("failed to list cache: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 cached entries, got %d", len(entries))
		}
	})

	t.Run("requires the local cache", func(t *testing.T) {
		svcs, server := newTestServices(t, journalMoodHandler())
		defer server.Close()

		engine := NewCareEngine(svcs, nil, nil)

		if _, err := engine.SyncLocal(context.Background(), nil); err == nil {
			t.Error("expected error without cache repositories")
		}
	})
}
