package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore is the persistent home of the bearer credential.
//
// Token returns nil when no credential is present. Implementations must be
// safe for concurrent use: the client reads the token on every request and
// clears it on authentication failures.
type TokenStore interface {
	Token() *oauth2.Token
	Set(tok *oauth2.Token) error
	Clear() error
}

// FileTokenStore persists the session token as JSON under the solace home
// directory (default ~/.solace/token.json), mode 0600.
type FileTokenStore struct {
	mu   sync.RWMutex
	path string
	tok  *oauth2.Token
}

// NewFileTokenStore creates a FileTokenStore at path, loading any existing
// token from disk. A missing or unreadable file starts the store empty.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".solace", "token.json")
	}

	s := &FileTokenStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, nil
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err == nil && tok.AccessToken != "" {
		s.tok = &tok
	}

	return s, nil
}

// Token returns the stored token, or nil when logged out.
func (s *FileTokenStore) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

// Set stores the token in memory and on disk.
func (s *FileTokenStore) Set(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok == nil || tok.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrInvalidCredentials)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	s.tok = tok
	return nil
}

// Clear removes the token from memory and disk. Clearing an empty store is a no-op.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tok = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore for tests and ephemeral sessions.
type MemoryTokenStore struct {
	mu  sync.RWMutex
	tok *oauth2.Token
}

func NewMemoryTokenStore(tok *oauth2.Token) *MemoryTokenStore {
	return &MemoryTokenStore{tok: tok}
}

func (s *MemoryTokenStore) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

func (s *MemoryTokenStore) Set(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = nil
	return nil
}
