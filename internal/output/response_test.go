package output

import (
	"encoding/json"
	"testing"

	"github.com/desertthunder/spotify-cli/internal/api"
)

func TestSuccessSerializationOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Success(200, "done"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	json.Unmarshal(data, &raw)

	for _, key := range []string{"payload", "payload_kind", "error"} {
		if _, present := raw[key]; present {
			t.Errorf("key %q should be omitted from a bare success", key)
		}
	}
	if raw["status"] != "success" || raw["code"] != float64(200) || raw["message"] != "done" {
		t.Errorf("envelope = %v", raw)
	}
}

func TestSuccessTypedSerializesKind(t *testing.T) {
	resp := SuccessTyped(200, "ok", KindPlayerStatus, map[string]any{"is_playing": true})
	data, _ := json.Marshal(resp)
	var raw map[string]any
	json.Unmarshal(data, &raw)

	if raw["payload_kind"] != "player_status" {
		t.Errorf("payload_kind = %v, want player_status", raw["payload_kind"])
	}
	if _, present := raw["payload"]; !present {
		t.Error("payload missing")
	}
	if _, present := raw["error"]; present {
		t.Error("error should be omitted on success")
	}
}

func TestErrSerialization(t *testing.T) {
	data, _ := json.Marshal(ErrWithDetails(404, "Pin not found", ErrKindNotFound, "try: spotify-cli pin list"))
	var raw map[string]any
	json.Unmarshal(data, &raw)

	errObj, ok := raw["error"].(map[string]any)
	if !ok {
		t.Fatal("error object missing")
	}
	if errObj["kind"] != "not_found" {
		t.Errorf("kind = %v, want not_found", errObj["kind"])
	}
	if errObj["details"] != "try: spotify-cli pin list" {
		t.Errorf("details = %v", errObj["details"])
	}
	if _, present := raw["payload"]; present {
		t.Error("payload should be omitted on error")
	}
}

func TestFromAPIError(t *testing.T) {
	tc := []struct {
		name        string
		err         *api.Error
		context     string
		wantCode    int
		wantMessage string
		wantKind    ErrorKind
		wantDetails string
	}{
		{
			name:        "unauthorized",
			err:         &api.Error{Class: api.ErrClassUnauthorized, Status: 401},
			context:     "Auth check",
			wantCode:    401,
			wantMessage: "Auth check: 401 Unauthorized",
			wantKind:    ErrKindAuth,
			wantDetails: "Session expired - run: spotify-cli auth refresh",
		},
		{
			name:        "not found",
			err:         &api.Error{Class: api.ErrClassNotFound, Status: 404},
			context:     "Get playlist",
			wantCode:    404,
			wantMessage: "Get playlist: 404 Not Found",
			wantKind:    ErrKindNotFound,
			wantDetails: "Resource not found",
		},
		{
			name:        "api error keeps remote status",
			err:         &api.Error{Class: api.ErrClassAPI, Status: 502, Message: "Spotify server error"},
			context:     "Search",
			wantCode:    502,
			wantMessage: "Search: HTTP 502: Spotify server error",
			wantKind:    ErrKindAPI,
			wantDetails: "Spotify server error",
		},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			resp := FromAPIError(c.err, c.context)
			if resp.Status != "error" {
				t.Errorf("status = %q", resp.Status)
			}
			if resp.Code != c.wantCode {
				t.Errorf("code = %d, want %d", resp.Code, c.wantCode)
			}
			if resp.Message != c.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, c.wantMessage)
			}
			if resp.Error.Kind != c.wantKind {
				t.Errorf("kind = %q, want %q", resp.Error.Kind, c.wantKind)
			}
			if resp.Error.Details != c.wantDetails {
				t.Errorf("details = %q, want %q", resp.Error.Details, c.wantDetails)
			}
		})
	}
}
