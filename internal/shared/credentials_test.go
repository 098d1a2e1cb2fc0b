package shared

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestFileTokenStore(t *testing.T) {
	t.Run("Empty Store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")

		store, err := NewFileTokenStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if store.Token() != nil {
			t.Error("expected nil token from empty store")
		}
	})

	t.Run("Set And Reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")

		store, err := NewFileTokenStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		tok := &oauth2.Token{AccessToken: "abc123", TokenType: "bearer"}
		if err := store.Set(tok); err != nil {
			t.Fatalf("failed to set token: %v", err)
		}

		if got := store.Token(); got == nil || got.AccessToken != "abc123" {
			t.Errorf("expected stored token abc123, got %v", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("token file should exist: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected token file mode 0600, got %v", info.Mode().Perm())
		}

		reloaded, err := NewFileTokenStore(path)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		if got := reloaded.Token(); got == nil || got.AccessToken != "abc123" {
			t.Errorf("expected reloaded token abc123, got %v", got)
		}
	})

	t.Run("Set Empty Token Fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")

		store, _ := NewFileTokenStore(path)
		if err := store.Set(&oauth2.Token{}); err == nil {
			t.Error("expected error for empty access token")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")

		store, _ := NewFileTokenStore(path)
		store.Set(&oauth2.Token{AccessToken: "abc123"})

		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear store: %v", err)
		}

		if store.Token() != nil {
			t.Error("expected nil token after clear")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected token file removed after clear")
		}

		// Clearing again is a no-op.
		if err := store.Clear(); err != nil {
			t.Errorf("expected nil error clearing empty store, got %v", err)
		}
	})

	t.Run("Corrupt File Starts Empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(path, []byte("not json"), 0600)

		store, err := NewFileTokenStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		if store.Token() != nil {
			t.Error("expected nil token from corrupt file")
		}
	})
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore(nil)

	if store.Token() != nil {
		t.Error("expected nil token initially")
	}

	store.Set(&oauth2.Token{AccessToken: "mem"})
	if got := store.Token(); got == nil || got.AccessToken != "mem" {
		t.Errorf("expected token mem, got %v", got)
	}

	store.Clear()
	if store.Token() != nil {
		t.Error("expected nil token after clear")
	}
}
