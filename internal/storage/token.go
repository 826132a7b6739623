// package storage persists the OAuth token (system keychain or JSON file)
// and the user's pinned resources.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/spotify-cli/internal/auth"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

// TokenStore persists one OAuth token.
type TokenStore interface {
	Save(token *auth.Token) error
	Load() (*auth.Token, error)
	Delete() error
	Exists() bool
}

// FileTokenStore keeps the token as pretty-printed JSON in token.json,
// readable only by the owner.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a file-backed store at the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(token *auth.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load() (*auth.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, shared.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var token auth.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

func (s *FileTokenStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
