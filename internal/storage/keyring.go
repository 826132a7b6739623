package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/desertthunder/spotify-cli/internal/auth"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "spotify-cli"
	keyringKey     = "oauth_token"
)

// KeyringTokenStore keeps the token in the system keychain as a JSON value.
type KeyringTokenStore struct{}

// NewKeyringTokenStore probes the keychain once so an unusable backend
// (headless session, missing secret service) surfaces at construction.
func NewKeyringTokenStore() (*KeyringTokenStore, error) {
	s := &KeyringTokenStore{}
	if _, err := keyring.Get(keyringService, keyringKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("keychain unavailable: %w", err)
	}
	return s, nil
}

func (s *KeyringTokenStore) Save(token *auth.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}
	if err := keyring.Set(keyringService, keyringKey, string(data)); err != nil {
		return fmt.Errorf("failed to write token to keychain: %w", err)
	}
	return nil
}

func (s *KeyringTokenStore) Load() (*auth.Token, error) {
	value, err := keyring.Get(keyringService, keyringKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, shared.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token from keychain: %w", err)
	}
	var token auth.Token
	if err := json.Unmarshal([]byte(value), &token); err != nil {
		return nil, fmt.Errorf("failed to parse keychain token: %w", err)
	}
	return &token, nil
}

func (s *KeyringTokenStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keychain: %w", err)
	}
	return nil
}

func (s *KeyringTokenStore) Exists() bool {
	_, err := keyring.Get(keyringService, keyringKey)
	return err == nil
}
