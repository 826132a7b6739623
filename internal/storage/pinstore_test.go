package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

func tempStore(t *testing.T) *PinStore {
	t.Helper()
	store, err := LoadPinStore(filepath.Join(t.TempDir(), "pins.json"))
	if err != nil {
		t.Fatalf("LoadPinStore() error: %v", err)
	}
	return store
}

func TestLoadPinStoreMissingFile(t *testing.T) {
	store := tempStore(t)
	if len(store.Pins) != 0 {
		t.Errorf("fresh store has %d pins, want 0", len(store.Pins))
	}
}

func TestPinStoreSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pins.json")
	store, _ := LoadPinStore(path)
	if err := store.Add(NewPin("road trip", "37i9dQZF1DXcBWIGoYBM5M", KindPlaylist, []string{"summer"})); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Pretty JSON on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pins file: %v", err)
	}
	var pretty map[string]any
	if err := json.Unmarshal(data, &pretty); err != nil {
		t.Fatalf("pins file is not valid JSON: %v", err)
	}
	if data[0] != '{' || data[1] != '\n' {
		t.Error("pins file should be indented")
	}

	reloaded, err := LoadPinStore(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	pin, ok := reloaded.FindByAlias("Road Trip")
	if !ok {
		t.Fatal("alias lookup should be case-insensitive")
	}
	if pin.ID != "37i9dQZF1DXcBWIGoYBM5M" || pin.Kind != KindPlaylist {
		t.Errorf("reloaded pin = %+v", pin)
	}
}

func TestPinStoreAddDuplicateAlias(t *testing.T) {
	store := tempStore(t)
	if err := store.Add(NewPin("Gym", "id1", KindPlaylist, nil)); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}
	err := store.Add(NewPin("gym", "id2", KindPlaylist, nil))
	if !errors.Is(err, shared.ErrDuplicateAlias) {
		t.Errorf("duplicate alias error = %v, want ErrDuplicateAlias", err)
	}
}

func TestPinStoreRemove(t *testing.T) {
	tc := []struct {
		name    string
		arg     string
		wantID  string
		wantErr bool
	}{
		{"by alias case-insensitive", "GYM", "id1", false},
		{"by exact id", "id2", "id2", false},
		{"id match is case-sensitive", "ID2", "", true},
		{"unknown", "nothing", "", true},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			store := tempStore(t)
			store.Add(NewPin("gym", "id1", KindPlaylist, nil))
			store.Add(NewPin("focus", "id2", KindAlbum, nil))

			pin, err := store.Remove(c.arg)
			if c.wantErr {
				if !errors.Is(err, shared.ErrPinNotFound) {
					t.Errorf("error = %v, want ErrPinNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Remove(%q) error: %v", c.arg, err)
			}
			if pin.ID != c.wantID {
				t.Errorf("removed %q, want %q", pin.ID, c.wantID)
			}
			if len(store.Pins) != 1 {
				t.Errorf("%d pins remain, want 1", len(store.Pins))
			}
		})
	}
}

func TestPinStoreList(t *testing.T) {
	store := tempStore(t)
	store.Add(NewPin("gym", "id1", KindPlaylist, nil))
	store.Add(NewPin("focus", "id2", KindAlbum, nil))
	store.Add(NewPin("chill", "id3", KindPlaylist, nil))

	if got := len(store.List("")); got != 3 {
		t.Errorf("List(\"\") = %d pins, want 3", got)
	}
	if got := len(store.List(KindPlaylist)); got != 2 {
		t.Errorf("List(playlist) = %d pins, want 2", got)
	}
	if got := len(store.List(KindShow)); got != 0 {
		t.Errorf("List(show) = %d pins, want 0", got)
	}
}

func TestPinStoreFuzzySearch(t *testing.T) {
	store := tempStore(t)
	store.Add(NewPin("road trip", "id1", KindPlaylist, []string{"summer"}))
	store.Add(NewPin("gym mix", "id2", KindPlaylist, nil))

	matches := store.FuzzySearch("road", testScorer())
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Pin.ID != "id1" || matches[0].Score <= 0 {
		t.Errorf("match = %+v", matches[0])
	}
}
