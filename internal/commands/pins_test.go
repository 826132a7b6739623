package commands

import (
	"context"
	"net/http"
	"testing"

	"github.com/desertthunder/spotify-cli/internal/output"
)

func TestPinLifecycle(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{}, "")
	ctx := context.Background()

	resp := h.PinAdd(ctx, "beach mix", "https://open.spotify.com/playlist/37i9dQZF1DX?si=abc", "playlist", []string{"summer"})
	if resp.IsError() {
		t.Fatalf("add failed: %s", resp.Message)
	}
	if resp.Code != http.StatusCreated {
		t.Errorf("code = %d", resp.Code)
	}

	resp = h.PinAdd(ctx, "beach mix", "other", "track", nil)
	if !resp.IsError() || resp.Code != http.StatusConflict {
		t.Errorf("duplicate alias: code = %d error = %v", resp.Code, resp.IsError())
	}

	resp = h.PinList(ctx, "")
	if resp.IsError() {
		t.Fatalf("list failed: %s", resp.Message)
	}
	pins := resp.Payload.(map[string]any)["pins"].([]map[string]any)
	if len(pins) != 1 || pins[0]["id"] != "37i9dQZF1DX" {
		t.Errorf("pins = %v", pins)
	}

	resp = h.PinShow(ctx, "BEACH MIX")
	if resp.IsError() {
		t.Fatalf("show failed: %s", resp.Message)
	}

	resp = h.PinRemove(ctx, "beach mix")
	if resp.IsError() {
		t.Fatalf("remove failed: %s", resp.Message)
	}
	resp = h.PinRemove(ctx, "beach mix")
	if !resp.IsError() || resp.Error.Kind != output.ErrKindNotFound {
		t.Error("second remove should report not found")
	}
}

func TestPinAddValidation(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{}, "")
	ctx := context.Background()

	if resp := h.PinAdd(ctx, "", "id", "track", nil); !resp.IsError() {
		t.Error("missing alias must fail")
	}
	if resp := h.PinAdd(ctx, "alias", "id", "song", nil); !resp.IsError() {
		t.Error("invalid kind must fail")
	}
}

func TestPinSearchSortsByScore(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{}, "")
	ctx := context.Background()

	for _, pin := range []struct{ alias, kind string }{
		{"beach mix", "playlist"},
		{"beach", "playlist"},
		{"unrelated", "track"},
	} {
		if resp := h.PinAdd(ctx, pin.alias, "id-"+pin.alias, pin.kind, nil); resp.IsError() {
			t.Fatalf("add %q failed: %s", pin.alias, resp.Message)
		}
	}

	resp := h.PinSearch(ctx, "beach")
	if resp.IsError() {
		t.Fatalf("search failed: %s", resp.Message)
	}
	pins := resp.Payload.(map[string]any)["pins"].([]map[string]any)
	if len(pins) != 2 {
		t.Fatalf("matches = %d, want 2", len(pins))
	}
	if pins[0]["name"] != "beach" {
		t.Errorf("first match = %v, want the exact alias", pins[0]["name"])
	}
	if _, ok := pins[0]["fuzzy_score"].(int); !ok {
		t.Error("matches must carry fuzzy_score")
	}
}
