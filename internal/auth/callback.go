package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

// Loopback receiver defaults.
const (
	CallbackPort = 8888
	CallbackPath = "/callback"
	FlowTimeout  = 300 * time.Second
)

// RedirectURI is the loopback address registered with the Spotify app.
var RedirectURI = fmt.Sprintf("http://127.0.0.1:%d%s", CallbackPort, CallbackPath)

// CallbackResult is the outcome of one authorization redirect.
type CallbackResult struct {
	Code string
	err  error
}

func (r CallbackResult) Error() error { return r.err }

// CallbackServer is a single-use loopback HTTP server that waits for the
// browser redirect carrying the authorization code.
type CallbackServer struct {
	state      string
	addr       string
	resultChan chan CallbackResult
	once       sync.Once
}

// NewCallbackServer creates a receiver bound to the loopback interface
// that accepts redirects for the given state token.
func NewCallbackServer(state string) *CallbackServer {
	return &CallbackServer{
		state:      state,
		addr:       fmt.Sprintf("127.0.0.1:%d", CallbackPort),
		resultChan: make(chan CallbackResult, 1),
	}
}

// ServeHTTP handles the redirect. Requests for any other path get a 404 and
// the server keeps waiting, so favicon probes don't consume the flow.
func (s *CallbackServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != CallbackPath {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		detail := "Access was denied. You can close this window."
		cause := errParam
		if desc := q.Get("error_description"); desc != "" {
			detail = fmt.Sprintf("%s You can close this window.", desc)
			cause = fmt.Sprintf("%s: %s", errParam, desc)
		}
		s.send(CallbackResult{err: fmt.Errorf("%w: %s", shared.ErrAuthDenied, cause)})
		s.writePage(w, "Authorization Failed", detail)
		return
	}

	if q.Get("state") != s.state {
		s.send(CallbackResult{err: shared.ErrStateMismatch})
		s.writePage(w, "Authorization Failed", "State mismatch. You can close this window and retry.")
		return
	}

	code := q.Get("code")
	if code == "" {
		s.send(CallbackResult{err: fmt.Errorf("%w: no code in callback", shared.ErrAuthFailed)})
		s.writePage(w, "Authorization Failed", "No authorization code received.")
		return
	}

	s.send(CallbackResult{Code: code})
	s.writePage(w, "Authenticated!", "You can close this window and return to the terminal.")
}

// Wait serves until the redirect arrives, the context is canceled, or
// [FlowTimeout] elapses, and returns the authorization code.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to bind callback listener on %s: %w", s.addr, err)
	}

	srv := &http.Server{Handler: s}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	select {
	case result := <-s.resultChan:
		if result.err != nil {
			return "", result.err
		}
		return result.Code, nil
	case <-time.After(FlowTimeout):
		return "", fmt.Errorf("%w: no callback within %s", shared.ErrTimeout, FlowTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *CallbackServer) send(result CallbackResult) {
	s.once.Do(func() {
		s.resultChan <- result
		close(s.resultChan)
	})
}

func (s *CallbackServer) writePage(w http.ResponseWriter, heading, detail string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #191414; color: #fff; }
        .container { text-align: center; padding: 2rem; }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #b3b3b3; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, heading, heading, detail)
}
