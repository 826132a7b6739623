package commands

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/auth"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

type stubTokenStore struct {
	token   *auth.Token
	saved   *auth.Token
	saveErr error
}

func (s *stubTokenStore) Save(token *auth.Token) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = token
	s.token = token
	return nil
}

func (s *stubTokenStore) Load() (*auth.Token, error) {
	if s.token == nil {
		return nil, shared.ErrTokenNotFound
	}
	return s.token, nil
}

func (s *stubTokenStore) Delete() error {
	s.token = nil
	return nil
}

func (s *stubTokenStore) Exists() bool { return s.token != nil }

func liveToken() *auth.Token {
	return &auth.Token{
		AccessToken:  "test-access",
		TokenType:    "Bearer",
		RefreshToken: "test-refresh",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}
}

func expiredToken(refresh string) *auth.Token {
	return &auth.Token{
		AccessToken:  "stale-access",
		TokenType:    "Bearer",
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(-time.Hour).Unix(),
	}
}

func newTestHandler(t *testing.T, tokens storage.TokenStore, baseURL string) *Handler {
	t.Helper()
	cfg := shared.DefaultConfig()
	opts := []api.Option{}
	if baseURL != "" {
		opts = append(opts, api.WithBaseURL(baseURL))
	}
	return NewHandler(cfg, shared.NewLogger(io.Discard), tokens,
		filepath.Join(t.TempDir(), "pins.json"), opts...)
}

// jsonServer answers every request from a path-keyed map of payloads.
func jsonServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"status":404,"message":"Not found"}}`))
			return
		}
		if payload == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func TestClientNotLoggedIn(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{}, "")

	resp := h.PlayerStatus(context.Background())
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Message != "Not logged in. Run: spotify-cli auth login" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Code != http.StatusUnauthorized || resp.Error.Kind != output.ErrKindAuth {
		t.Errorf("code = %d kind = %q", resp.Code, resp.Error.Kind)
	}
}

func TestClientExpiredWithoutRefreshToken(t *testing.T) {
	h := newTestHandler(t, &stubTokenStore{token: expiredToken("")}, "")

	resp := h.PlayerStatus(context.Background())
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Message != "Token expired. Run: spotify-cli auth refresh" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestClientAutoRefreshesExpiredToken(t *testing.T) {
	srv := jsonServer(t, map[string]any{
		"/me/player": map[string]any{"is_playing": true, "item": map[string]any{"name": "Song"}},
	})
	defer srv.Close()

	store := &stubTokenStore{token: expiredToken("test-refresh")}
	h := newTestHandler(t, store, srv.URL)
	h.refresh = func(ctx context.Context, current *auth.Token) (*auth.Token, error) {
		if current.RefreshToken != "test-refresh" {
			t.Errorf("refresh called with token %q", current.RefreshToken)
		}
		return liveToken(), nil
	}

	resp := h.PlayerStatus(context.Background())
	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}
	if store.saved == nil || store.saved.AccessToken != "test-access" {
		t.Error("refreshed token was not persisted")
	}
}

func TestCurrentUserWrapsPlainErrors(t *testing.T) {
	// A malformed base URL fails request construction before any HTTP
	// exchange, so the client surfaces a plain wrapped error rather
	// than an *api.Error.
	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, "://bad url")
	c, errResp := h.client(context.Background())
	if errResp != nil {
		t.Fatalf("client: %s", errResp.Message)
	}

	user, apiErr := h.currentUser(context.Background(), c)
	if user != nil {
		t.Errorf("user = %v, want nil", user)
	}
	if apiErr == nil {
		t.Fatal("expected an error")
	}
	if apiErr.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", apiErr.StatusCode(), http.StatusServiceUnavailable)
	}
}

func TestAPIErrorBecomesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"status":404,"message":"Not found"}}`))
	}))
	defer srv.Close()

	h := newTestHandler(t, &stubTokenStore{token: liveToken()}, srv.URL)
	resp := h.InfoTrack(context.Background(), "missing")
	if !resp.IsError() {
		t.Fatal("expected an error envelope")
	}
	if resp.Code != http.StatusNotFound || resp.Error.Kind != output.ErrKindNotFound {
		t.Errorf("code = %d kind = %q", resp.Code, resp.Error.Kind)
	}
	if resp.Message != "Get track: 404 Not Found" {
		t.Errorf("message = %q", resp.Message)
	}
}
