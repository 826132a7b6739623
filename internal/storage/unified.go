package storage

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-cli/internal/auth"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

var newKeyringStore = func() (TokenStore, error) { return NewKeyringTokenStore() }

// UnifiedTokenStore prefers the system keychain when configured and falls
// back to the JSON file, migrating file tokens into the keychain on load.
type UnifiedTokenStore struct {
	keyring TokenStore
	file    *FileTokenStore
	logger  *log.Logger
}

// NewUnifiedTokenStore builds the store for a configured backend. When the
// keychain is requested but unusable, it warns once and runs file-only; the
// decision is made here so later calls never re-probe the keychain.
func NewUnifiedTokenStore(backend, tokenPath string, logger *log.Logger) *UnifiedTokenStore {
	s := &UnifiedTokenStore{file: NewFileTokenStore(tokenPath), logger: logger}
	if backend != shared.StorageKeyring {
		return s
	}
	kr, err := newKeyringStore()
	if err != nil {
		logger.Warn("keychain unavailable, falling back to file storage", "err", err)
		return s
	}
	s.keyring = kr
	return s
}

// Save writes to the active backend.
func (s *UnifiedTokenStore) Save(token *auth.Token) error {
	if s.keyring != nil {
		return s.keyring.Save(token)
	}
	return s.file.Save(token)
}

// Load reads the keychain first, then the file. A token found only in the
// file is migrated: saved to the keychain, and the file removed only when
// that save succeeded.
func (s *UnifiedTokenStore) Load() (*auth.Token, error) {
	if s.keyring == nil {
		return s.file.Load()
	}

	token, err := s.keyring.Load()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, shared.ErrTokenNotFound) {
		return nil, err
	}

	token, err = s.file.Load()
	if err != nil {
		return nil, err
	}
	if saveErr := s.keyring.Save(token); saveErr != nil {
		s.logger.Warn("could not migrate token to keychain", "err", saveErr)
		return token, nil
	}
	if rmErr := s.file.Delete(); rmErr != nil {
		s.logger.Warn("migrated token but could not remove token file", "err", rmErr)
	}
	return token, nil
}

// Delete clears both backends.
func (s *UnifiedTokenStore) Delete() error {
	var krErr error
	if s.keyring != nil {
		krErr = s.keyring.Delete()
	}
	if err := s.file.Delete(); err != nil {
		return err
	}
	return krErr
}

func (s *UnifiedTokenStore) Exists() bool {
	if s.keyring != nil && s.keyring.Exists() {
		return true
	}
	return s.file.Exists()
}
