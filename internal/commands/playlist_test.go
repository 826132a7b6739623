package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"

	"github.com/desertthunder/spotify-cli/internal/storage"
)

func TestIDShaped(t *testing.T) {
	tc := []struct {
		input string
		want  bool
	}{
		{"37i9dQZF1DXcBWIGoYBM5M", true},
		{"abc123", true},
		{"my playlist", false},
		{"name-with-dash", false},
		{"", false},
	}
	for _, c := range tc {
		if got := idShaped(c.input); got != c.want {
			t.Errorf("idShaped(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestResolvePlaylistPinFastPath(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, "")
	store, _ := storage.LoadPinStore(h.pinsPath)
	_ = store.Add(storage.NewPin("workout", "37i9dQZF1DXworkout", storage.KindPlaylist, nil))
	if err := store.Save(); err != nil {
		t.Fatal(err)
	}

	id, errResp := h.resolvePlaylist(context.Background(), nil, "WORKOUT")
	if errResp != nil {
		t.Fatalf("unexpected error: %s", errResp.Message)
	}
	if id != "37i9dQZF1DXworkout" {
		t.Errorf("id = %q", id)
	}
}

func TestResolvePlaylistByName(t *testing.T) {
	srv := jsonServer(t, map[string]any{
		"/me/playlists": map[string]any{"items": []any{
			map[string]any{"id": "pl1", "name": "Road Trip"},
			map[string]any{"id": "pl2", "name": "Focus"},
		}},
	})
	defer srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, srv.URL)
	c, errResp := h.client(context.Background())
	if errResp != nil {
		t.Fatal(errResp.Message)
	}

	id, errResp := h.resolvePlaylist(context.Background(), c, "road trip")
	if errResp != nil {
		t.Fatalf("unexpected error: %s", errResp.Message)
	}
	if id != "pl1" {
		t.Errorf("id = %q, want pl1", id)
	}

	_, errResp = h.resolvePlaylist(context.Background(), c, "no such list")
	if errResp == nil {
		t.Fatal("expected a not-found envelope")
	}
	if errResp.Message != `Playlist not found: "no such list". Pass an id, URL, or exact name` {
		t.Errorf("message = %q", errResp.Message)
	}
}

func TestPlaylistAddRequiresInput(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, "")

	resp := h.PlaylistAdd(context.Background(), "pl1", nil, false, -1, false)
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Message != "Provide track URIs or use --now-playing" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestPlaylistAddNowPlayingIdle(t *testing.T) {
	srv := jsonServer(t, map[string]any{
		"/me/player": map[string]any{"is_playing": false},
	})
	defer srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, srv.URL)
	resp := h.PlaylistAdd(context.Background(), "pl1abc", nil, true, -1, false)
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Message != "Nothing is playing" || resp.Code != http.StatusNotFound {
		t.Errorf("message = %q code = %d", resp.Message, resp.Code)
	}
}

func TestPlaylistEditRequiresChanges(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, "")

	resp := h.PlaylistEdit(context.Background(), "pl1", "", "", nil)
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Message != "Nothing to change. Provide --name, --description, or --public" {
		t.Errorf("message = %q", resp.Message)
	}
}

func trackEntry(id, name string) map[string]any {
	return map[string]any{"track": map[string]any{
		"id": id, "name": name, "uri": "spotify:track:" + id,
	}}
}

// dedupServer records the remove and re-add requests issued by the
// clear-and-rewrite strategy.
type dedupServer struct {
	srv           *httptest.Server
	removed       []string
	removeBatches []int
	added         []string
}

func newDedupServer(t *testing.T, entries []any) *dedupServer {
	t.Helper()
	ds := &dedupServer{}
	ds.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			limit, _ := strconv.Atoi(q.Get("limit"))
			offset, _ := strconv.Atoi(q.Get("offset"))
			if limit <= 0 {
				limit = len(entries)
			}
			page := []any{}
			if offset < len(entries) {
				end := offset + limit
				if end > len(entries) {
					end = len(entries)
				}
				page = entries[offset:end]
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"items": page})
		case http.MethodDelete:
			var body struct {
				Tracks []struct {
					URI string `json:"uri"`
				} `json:"tracks"`
			}
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &body)
			ds.removeBatches = append(ds.removeBatches, len(body.Tracks))
			for _, track := range body.Tracks {
				ds.removed = append(ds.removed, track.URI)
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"snapshot_id":"snap"}`))
		case http.MethodPost:
			var body struct {
				URIs []string `json:"uris"`
			}
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &body)
			ds.added = append(ds.added, body.URIs...)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"snapshot_id":"snap"}`))
		}
	}))
	return ds
}

func TestPlaylistDedupPreservesFirstOccurrenceOrder(t *testing.T) {
	ds := newDedupServer(t, []any{
		trackEntry("a", "Track A"),
		trackEntry("b", "Track B"),
		trackEntry("a", "Track A"),
		trackEntry("c", "Track C"),
		trackEntry("b", "Track B"),
		trackEntry("d", "Track D"),
	})
	defer ds.srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, ds.srv.URL)
	resp := h.PlaylistDedup(context.Background(), "pl1abc", false)
	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}

	if len(ds.removed) != 6 {
		t.Errorf("cleared %d URIs, want all 6", len(ds.removed))
	}
	want := []string{"spotify:track:a", "spotify:track:b", "spotify:track:c", "spotify:track:d"}
	if !reflect.DeepEqual(ds.added, want) {
		t.Errorf("restored %v, want %v", ds.added, want)
	}
}

func TestPlaylistDedupChunksClearRequests(t *testing.T) {
	// 120 unique tracks plus 30 repeats: clearing 150 URIs must split
	// across DELETE requests of at most 100.
	var entries []any
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("t%03d", i)
		entries = append(entries, trackEntry(id, "Track "+id))
	}
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("t%03d", i)
		entries = append(entries, trackEntry(id, "Track "+id))
	}
	ds := newDedupServer(t, entries)
	defer ds.srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, ds.srv.URL)
	resp := h.PlaylistDedup(context.Background(), "pl1abc", false)
	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}

	if len(ds.removed) != 150 {
		t.Errorf("cleared %d URIs, want all 150", len(ds.removed))
	}
	if len(ds.removeBatches) != 2 {
		t.Fatalf("clear issued %d requests, want 2", len(ds.removeBatches))
	}
	for _, size := range ds.removeBatches {
		if size > 100 {
			t.Errorf("clear batch of %d URIs exceeds the per-request cap", size)
		}
	}
	if len(ds.added) != 120 {
		t.Errorf("restored %d URIs, want 120", len(ds.added))
	}
}

func TestPlaylistDedupDryRun(t *testing.T) {
	ds := newDedupServer(t, []any{
		trackEntry("a", "Track A"),
		trackEntry("a", "Track A"),
		trackEntry("b", "Track B"),
	})
	defer ds.srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, ds.srv.URL)
	resp := h.PlaylistDedup(context.Background(), "pl1abc", true)
	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}
	if len(ds.removed) != 0 || len(ds.added) != 0 {
		t.Error("dry run must not issue write requests")
	}
	payload := resp.Payload.(map[string]any)
	if payload["total_tracks"] != 3 || payload["unique_tracks"] != 2 {
		t.Errorf("payload = %v", payload)
	}
	if dups := payload["duplicates"].([]string); len(dups) != 1 || dups[0] != "Track A" {
		t.Errorf("duplicates = %v", dups)
	}
}

func TestPlaylistDedupCleanStates(t *testing.T) {
	tc := []struct {
		name    string
		entries []any
		want    string
	}{
		{"empty playlist", []any{}, "Playlist is empty, nothing to deduplicate"},
		{"no duplicates", []any{trackEntry("a", "A"), trackEntry("b", "B")}, "No duplicates found"},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			ds := newDedupServer(t, c.entries)
			defer ds.srv.Close()

			h := newTestHandler(t, &stubTokenStore{token: liveToken()}, ds.srv.URL)
			resp := h.PlaylistDedup(context.Background(), "pl1abc", false)
			if resp.IsError() {
				t.Fatalf("unexpected error: %s", resp.Message)
			}
			if resp.Message != c.want {
				t.Errorf("message = %q, want %q", resp.Message, c.want)
			}
			if len(ds.removed) != 0 {
				t.Error("no writes expected")
			}
		})
	}
}

func TestPlaylistDuplicateDefaultName(t *testing.T) {
	var createdName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/playlists/pl1abc":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "pl1abc", "name": "Road Trip",
				"tracks": map[string]any{"items": []any{trackEntry("a", "A")}},
			})
		case r.URL.Path == "/me":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "user1"})
		case r.Method == http.MethodPost && r.URL.Path == "/users/user1/playlists":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			createdName, _ = body["name"].(string)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "pl2new", "name": createdName})
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"snapshot_id":"snap"}`))
		}
	}))
	defer srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, srv.URL)
	resp := h.PlaylistDuplicate(context.Background(), "pl1abc", "")
	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}
	if createdName != "Road Trip (Copy)" {
		t.Errorf("created name = %q", createdName)
	}
	if resp.Message != "Duplicated playlist as 'Road Trip (Copy)'" {
		t.Errorf("message = %q", resp.Message)
	}
}
