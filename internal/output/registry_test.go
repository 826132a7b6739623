package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func render(t *testing.T, kind PayloadKind, payload any) string {
	t.Helper()
	var buf bytes.Buffer
	DefaultRegistry().Format(&buf, kind, payload, "fallback message")
	return buf.String()
}

func TestShapeDispatch(t *testing.T) {
	tc := []struct {
		name    string
		payload string
		want    string
	}{
		{
			"player status claims payloads with item",
			`{"item":{"name":"Song","artists":[{"name":"Band"}],"duration_ms":100000},"is_playing":true,"progress_ms":5000,"device":{"name":"Desk","volume_percent":60}}`,
			"Playing",
		},
		{
			"queue needs both fields",
			`{"currently_playing":{"name":"Song","artists":[]},"queue":[{"name":"Next","artists":[]}]}`,
			"Up next",
		},
		{
			"playlist detail requires owner, not claimed by search",
			`{"name":"Mix","owner":{"display_name":"me"},"tracks":{"total":2,"items":[]},"public":true}`,
			"Mix",
		},
		{
			"search results claim container shapes without owner",
			`{"tracks":{"items":[{"id":"t1","name":"Song","artists":[{"name":"Band"}]}],"limit":20}}`,
			"Tracks",
		},
		{
			"combined search outranks standalone pins",
			`{"pins":[{"name":"gym","kind":"playlist","id":"p1","tags":[]}],"spotify":null}`,
			"Pinned",
		},
		{
			"pins without spotify render standalone",
			`{"pins":[{"name":"gym","kind":"playlist","id":"p1","tags":[]}]}`,
			"gym (playlist)",
		},
		{
			"artist detail needs followers and genres",
			`{"name":"Band","followers":{"total":10},"genres":["rock"],"popularity":50,"uri":"spotify:artist:a1"}`,
			"rock",
		},
		{
			"user profile excluded from artist by genres",
			`{"display_name":"me","product":"premium","id":"u1","country":"US","followers":{"total":3}}`,
			"plan: premium",
		},
		{
			"artist top tracks is a bare tracks array",
			`{"tracks":[{"name":"Hit","artists":[{"name":"Band"}]}]}`,
			"Hit - Band",
		},
		{
			"saved albums claim album wrappers",
			`{"items":[{"added_at":"2024-01-01","album":{"name":"LP","artists":[{"name":"Band"}],"release_date":"2020"}}]}`,
			"LP - Band (2020)",
		},
		{
			"unmatched shape falls back to the message",
			`{"strange":"shape"}`,
			"fallback message",
		},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			got := render(t, "", decode(t, c.payload))
			if !strings.Contains(got, c.want) {
				t.Errorf("output %q should contain %q", got, c.want)
			}
		})
	}
}

func TestKindDispatchBypassesShape(t *testing.T) {
	// A payload whose shape says playlist but whose kind says search:
	// the typed path must win.
	payload := decode(t, `{"owner":{"display_name":"me"},"tracks":{"items":[{"id":"x","name":"Song","artists":[]}],"limit":1}}`)
	got := render(t, KindSearchResults, payload)
	if !strings.Contains(got, "Tracks") {
		t.Errorf("typed dispatch should pick the search formatter, got %q", got)
	}
}

func TestScoreRendersFromIntPayload(t *testing.T) {
	// Payloads built in-process carry Go ints, not the float64 a JSON
	// round-trip produces. Both must render the same score.
	payload := map[string]any{
		"pins": []any{
			map[string]any{"name": "radar", "kind": "playlist", "id": "abc123", "tags": []any{}, "fuzzy_score": 42},
		},
	}
	got := render(t, KindPins, payload)
	if !strings.Contains(got, "[42]") {
		t.Errorf("output %q should contain %q", got, "[42]")
	}

	got = render(t, KindPins, decode(t, `{"pins":[{"name":"radar","kind":"playlist","id":"abc123","tags":[],"fuzzy_score":42}]}`))
	if !strings.Contains(got, "[42]") {
		t.Errorf("decoded output %q should contain %q", got, "[42]")
	}
}

func TestLibraryCheckArrayDispatch(t *testing.T) {
	got := render(t, "", decode(t, `[true,false,true]`))
	if !strings.Contains(got, "yes") || !strings.Contains(got, "no") {
		t.Errorf("library check output = %q", got)
	}

	// Arrays with non-boolean entries fall through to the message.
	got = render(t, "", decode(t, `[true,"no"]`))
	if strings.TrimSpace(got) != "fallback message" {
		t.Errorf("mixed array output = %q, want the plain message", got)
	}
}

func TestKindCoverage(t *testing.T) {
	// Every declared payload kind except generic must have a formatter on
	// the typed path.
	r := DefaultRegistry()
	kinds := []PayloadKind{
		KindAlbum, KindArtist, KindArtistList, KindArtistTopTracks, KindAudiobook,
		KindAudiobookList, KindCategory, KindCategoryList, KindChapter, KindChapterList,
		KindCombinedSearch, KindDevices, KindEpisode, KindEpisodeList, KindFeaturedPlaylists,
		KindFollowedArtists, KindLibraryCheck, KindMarkets, KindPins, KindPlayHistory,
		KindPlayerStatus, KindPlaylist, KindPlaylistList, KindQueue, KindRelatedArtists,
		KindSavedAlbums, KindSavedAudiobooks, KindSavedEpisodes, KindSavedShows,
		KindSavedTracks, KindSearchResults, KindShow, KindShowList, KindTopArtists,
		KindTopTracks, KindTrack, KindTrackList, KindUser,
	}
	for _, kind := range kinds {
		if _, ok := r.byKind[kind]; !ok {
			t.Errorf("no formatter registered for kind %q", kind)
		}
	}
}

func TestPrinterHumanError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := &Printer{registry: DefaultRegistry(), stdout: &stdout, stderr: &stderr}

	ok := p.Print(ErrWithDetails(401, "Auth check: 401 Unauthorized", ErrKindAuth,
		"Session expired - run: spotify-cli auth refresh"))
	if ok {
		t.Error("Print should report failure for an error envelope")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, errors belong on stderr", stdout.String())
	}
	want := "Error: Auth check: 401 Unauthorized\n  Session expired - run: spotify-cli auth refresh\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestPrinterJSONMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := &Printer{registry: DefaultRegistry(), stdout: &stdout, stderr: &stderr, json: true}

	if !p.Print(Success(204, "Playback paused")) {
		t.Error("Print should report success")
	}
	var raw map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if raw["code"] != float64(204) {
		t.Errorf("code = %v", raw["code"])
	}
}

func TestPrinterHumanSuccessWithoutPayload(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := &Printer{registry: DefaultRegistry(), stdout: &stdout, stderr: &stderr}
	p.Print(Success(204, "Playback paused"))
	if stdout.String() != "Playback paused\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q", stderr.String())
	}
}
