// Package tokenstore persists the single bearer token the client holds.
// One slot, one file: ~/.echoai/token.json. The stored token is opaque;
// presence on disk says nothing about validity, only the server can tell.
package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const tokenFileName = "token.json"

type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// Store is a mutex-guarded single-slot token store backed by a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store at the default location (~/.echoai/token.json).
func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewAt(filepath.Join(home, ".echoai", tokenFileName)), nil
}

// NewAt creates a store backed by the given file path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Save persists the token, replacing any previous one. The file is written
// with mode 0600.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(tokenFile{AccessToken: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Token returns the stored token. The second return is false when no token
// is stored or the file is unreadable.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil || tf.AccessToken == "" {
		return "", false
	}
	return tf.AccessToken, true
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
