package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", shared.NewLogger(nil), WithBaseURL(srv.URL))
}

func TestClientSendsBearerToken(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"ok":true}`))
	})
	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
}

func TestClientBodylessPutSendsContentLengthZero(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength != 0 {
			t.Errorf("ContentLength = %d, want 0", r.ContentLength)
		}
		if got := r.Header.Get("Content-Length"); got != "0" {
			t.Errorf("Content-Length header = %q, want \"0\"", got)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	payload, err := c.Put(context.Background(), PausePath(), nil)
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if payload != nil {
		t.Errorf("204 payload = %v, want nil", payload)
	}
}

func TestClientDecodesJSONBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Discover Weekly","tracks":{"total":30}}`))
	})
	payload, err := c.Get(context.Background(), "/playlists/abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type = %T, want object", payload)
	}
	if obj["name"] != "Discover Weekly" {
		t.Errorf("name = %v", obj["name"])
	}
}

func TestClientDecodesArrayBody(t *testing.T) {
	// Library contains endpoints return a bare boolean array.
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[true,false]`))
	})
	payload, err := c.Get(context.Background(), SavedContainsPath("tracks", []string{"a", "b"}))
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	arr, ok := payload.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("payload = %v (%T), want two-element array", payload, payload)
	}
}

func TestClientErrorClassification(t *testing.T) {
	tc := []struct {
		name      string
		status    int
		body      string
		wantClass ErrorClass
		wantMsg   string
	}{
		{
			"401 with standard envelope",
			http.StatusUnauthorized, `{"error":{"status":401,"message":"The access token expired"}}`,
			ErrClassUnauthorized, "The access token expired",
		},
		{"403", http.StatusForbidden, `{"error":{"status":403,"message":"Player command failed: Premium required"}}`,
			ErrClassForbidden, "Player command failed: Premium required"},
		{"404 short raw body", http.StatusNotFound, `no such playlist`, ErrClassNotFound, "no such playlist"},
		{"500 html body falls back to canned text", http.StatusBadGateway, `<html><body>Bad Gateway</body></html>`,
			ErrClassAPI, "Spotify server error"},
		{"unmapped status", http.StatusTeapot, ``, ErrClassAPI, "HTTP error 418"},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			})
			_, err := client.Get(context.Background(), "/whatever")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.Class != c.wantClass {
				t.Errorf("class = %v, want %v", apiErr.Class, c.wantClass)
			}
			if apiErr.Message != c.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, c.wantMsg)
			}
		})
	}
}

func TestClientRetriesRateLimit(t *testing.T) {
	var slept []time.Duration
	sleep = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleep = time.Sleep }()

	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})

	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatalf("Get() error after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(slept) != 2 || slept[0] != 3*time.Second {
		t.Errorf("slept = %v, want two 3s waits", slept)
	}
}

func TestClientRateLimitGivesUp(t *testing.T) {
	sleep = func(time.Duration) {}
	defer func() { sleep = time.Sleep }()

	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Get(context.Background(), "/me")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Class != ErrClassRateLimited {
		t.Fatalf("error = %v, want rate limited", err)
	}
	if apiErr.RetryAfter != 1 {
		t.Errorf("RetryAfter = %d, want 1", apiErr.RetryAfter)
	}
	if calls != maxRateLimitRetries+1 {
		t.Errorf("calls = %d, want %d", calls, maxRateLimitRetries+1)
	}
}

func TestUserMessages(t *testing.T) {
	tc := []struct {
		name string
		err  *Error
		want string
	}{
		{"network", NetworkError(errors.New("refused")), "Network error - check your connection"},
		{"unauthorized", &Error{Class: ErrClassUnauthorized, Status: 401}, "Session expired - run: spotify-cli auth refresh"},
		{"forbidden", &Error{Class: ErrClassForbidden, Status: 403}, "You don't have permission for this action"},
		{"not found", &Error{Class: ErrClassNotFound, Status: 404}, "Resource not found"},
		{"rate limited", &Error{Class: ErrClassRateLimited, Status: 429}, "Too many requests - please wait a moment"},
		{"api passes message through", &Error{Class: ErrClassAPI, Status: 400, Message: "Invalid id"}, "Invalid id"},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.UserMessage(); got != c.want {
				t.Errorf("UserMessage() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	if got := NetworkError(errors.New("x")).StatusCode(); got != http.StatusServiceUnavailable {
		t.Errorf("network StatusCode() = %d, want 503", got)
	}
	if got := (&Error{Class: ErrClassAPI, Status: 502}).StatusCode(); got != 502 {
		t.Errorf("api StatusCode() = %d, want 502", got)
	}
}
