package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

// PinStore holds the user's pins, persisted as pretty JSON in pins.json.
type PinStore struct {
	Pins []Pin `json:"pins"`

	path string
}

// ScoredPin pairs a pin with its fuzzy match score.
type ScoredPin struct {
	Pin   Pin
	Score int
}

// LoadPinStore reads the store from path. A missing file yields an empty
// store bound to that path.
func LoadPinStore(path string) (*PinStore, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &PinStore{Pins: []Pin{}, path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pins file: %w", err)
	}
	store := &PinStore{path: path}
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("failed to parse pins file: %w", err)
	}
	if store.Pins == nil {
		store.Pins = []Pin{}
	}
	return store, nil
}

// Save writes the store back to its path, creating parent directories.
func (s *PinStore) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create pins directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize pins: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pins file: %w", err)
	}
	return nil
}

// Add appends a pin. Aliases are unique case-insensitively.
func (s *PinStore) Add(pin Pin) error {
	if _, ok := s.FindByAlias(pin.Name); ok {
		return fmt.Errorf("%w: %q", shared.ErrDuplicateAlias, pin.Name)
	}
	s.Pins = append(s.Pins, pin)
	return nil
}

// Remove deletes the first pin whose alias matches case-insensitively, or
// failing that whose id matches exactly.
func (s *PinStore) Remove(aliasOrID string) (Pin, error) {
	lower := strings.ToLower(aliasOrID)
	for i, pin := range s.Pins {
		if strings.ToLower(pin.Name) == lower {
			s.Pins = append(s.Pins[:i], s.Pins[i+1:]...)
			return pin, nil
		}
	}
	for i, pin := range s.Pins {
		if pin.ID == aliasOrID {
			s.Pins = append(s.Pins[:i], s.Pins[i+1:]...)
			return pin, nil
		}
	}
	return Pin{}, fmt.Errorf("%w: %q", shared.ErrPinNotFound, aliasOrID)
}

// List returns pins, optionally filtered by kind (empty kind means all).
func (s *PinStore) List(kind ResourceKind) []Pin {
	if kind == "" {
		return s.Pins
	}
	var out []Pin
	for _, pin := range s.Pins {
		if pin.Kind == kind {
			out = append(out, pin)
		}
	}
	return out
}

// FindByAlias looks a pin up by alias, case-insensitively.
func (s *PinStore) FindByAlias(alias string) (Pin, bool) {
	lower := strings.ToLower(alias)
	for _, pin := range s.Pins {
		if strings.ToLower(pin.Name) == lower {
			return pin, true
		}
	}
	return Pin{}, false
}

// FuzzySearch returns all pins with a positive score for the query. The
// result is unordered; callers sort as needed.
func (s *PinStore) FuzzySearch(query string, scorer *Scorer) []ScoredPin {
	var out []ScoredPin
	for _, pin := range s.Pins {
		if score := scorer.ScorePin(query, pin); score > 0 {
			out = append(out, ScoredPin{Pin: pin, Score: score})
		}
	}
	return out
}
