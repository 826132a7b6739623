package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Token storage backends.
const (
	StorageKeyring = "keyring"
	StorageFile    = "file"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	App    AppConfig    `toml:"spotify-cli"`
	Search SearchConfig `toml:"search"`
}

// AppConfig contains the Spotify application credentials and storage choice.
type AppConfig struct {
	ClientID     string `toml:"client_id"`
	TokenStorage string `toml:"token_storage"`
}

// SearchConfig controls search result annotation and ordering.
type SearchConfig struct {
	ShowScores  bool        `toml:"show_scores"`
	SortByScore bool        `toml:"sort_by_score"`
	Fuzzy       FuzzyConfig `toml:"fuzzy"`
}

// FuzzyConfig holds the fuzzy matching score weights.
type FuzzyConfig struct {
	ExactMatch           int     `toml:"exact_match"`
	StartsWith           int     `toml:"starts_with"`
	Contains             int     `toml:"contains"`
	WordMatch            int     `toml:"word_match"`
	LevenshteinThreshold float64 `toml:"levenshtein_threshold"`
	LevenshteinScale     float64 `toml:"levenshtein_scale"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A missing file yields the embedded defaults so the CLI works before
// `config.toml` has ever been written.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.App.TokenStorage != StorageKeyring && config.App.TokenStorage != StorageFile {
		return nil, fmt.Errorf("%w: token_storage must be %q or %q", ErrInvalidConfig, StorageKeyring, StorageFile)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
