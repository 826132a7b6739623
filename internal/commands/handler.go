// package commands implements every user-facing operation as a handler
// returning a response envelope. The CLI command tree and the RPC
// dispatcher both call into this package, so each operation behaves
// identically in-process and through the daemon.
package commands

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/auth"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

// SkipProfileEnv suppresses the post-login profile fetch (tests).
const SkipProfileEnv = "SPOTIFY_CLI_SKIP_PROFILE"

// Handler carries the shared state every command operates on.
type Handler struct {
	cfg      *shared.Config
	logger   *log.Logger
	tokens   storage.TokenStore
	pinsPath string
	apiOpts  []api.Option

	// seams for tests
	login   func(ctx context.Context) (*auth.Token, error)
	refresh func(ctx context.Context, current *auth.Token) (*auth.Token, error)
}

// NewHandler wires a handler from loaded configuration and stores.
func NewHandler(cfg *shared.Config, logger *log.Logger, tokens storage.TokenStore, pinsPath string, apiOpts ...api.Option) *Handler {
	h := &Handler{
		cfg:      cfg,
		logger:   logger,
		tokens:   tokens,
		pinsPath: pinsPath,
		apiOpts:  apiOpts,
	}
	h.login = func(ctx context.Context) (*auth.Token, error) {
		flow, err := auth.NewFlow(cfg.App.ClientID, logger)
		if err != nil {
			return nil, err
		}
		return flow.Login(ctx)
	}
	h.refresh = func(ctx context.Context, current *auth.Token) (*auth.Token, error) {
		flow, err := auth.NewFlow(cfg.App.ClientID, logger)
		if err != nil {
			return nil, err
		}
		return flow.Refresh(ctx, current)
	}
	return h
}

// Scorer builds the fuzzy scorer from the configured weights.
func (h *Handler) Scorer() *storage.Scorer {
	return storage.NewScorer(h.cfg.Search.Fuzzy)
}

// pinStore loads the pin store; failures become storage-kind envelopes.
func (h *Handler) pinStore() (*storage.PinStore, *output.Response) {
	store, err := storage.LoadPinStore(h.pinsPath)
	if err != nil {
		return nil, output.ErrWithDetails(500, "Failed to open pin store", output.ErrKindStorage, err.Error())
	}
	return store, nil
}

// client returns an API client holding a live access token. An expired
// token is refreshed and re-saved transparently; only a missing token or
// an exhausted refresh path surfaces as an auth error.
func (h *Handler) client(ctx context.Context) (*api.Client, *output.Response) {
	token, err := h.tokens.Load()
	if err != nil {
		return nil, output.Err(http.StatusUnauthorized, "Not logged in. Run: spotify-cli auth login", output.ErrKindAuth)
	}

	if token.Expired() {
		if token.RefreshToken == "" {
			return nil, output.Err(http.StatusUnauthorized, "Token expired. Run: spotify-cli auth refresh", output.ErrKindAuth)
		}
		refreshed, err := h.refresh(ctx, token)
		if err != nil {
			h.logger.Warn("automatic token refresh failed", "err", err)
			return nil, output.Err(http.StatusUnauthorized, "Token expired. Run: spotify-cli auth refresh", output.ErrKindAuth)
		}
		if err := h.tokens.Save(refreshed); err != nil {
			h.logger.Warn("could not persist refreshed token", "err", err)
		}
		token = refreshed
	}

	return api.NewClient(token.AccessToken, h.logger, h.apiOpts...), nil
}

// withClient runs fn with an authenticated client, short-circuiting auth
// failures into their envelope.
func (h *Handler) withClient(ctx context.Context, fn func(c *api.Client) *output.Response) *output.Response {
	c, errResp := h.client(ctx)
	if errResp != nil {
		return errResp
	}
	return fn(c)
}

// currentUser fetches the authenticated user's profile object.
func (h *Handler) currentUser(ctx context.Context, c *api.Client) (map[string]any, *api.Error) {
	payload, err := c.Get(ctx, api.MePath())
	if err != nil {
		var apiErr *api.Error
		if !errors.As(err, &apiErr) {
			apiErr = api.NetworkError(err)
		}
		return nil, apiErr
	}
	obj, _ := payload.(map[string]any)
	return obj, nil
}

// skipProfile reports whether the optional profile fetch is suppressed.
func skipProfile() bool {
	return os.Getenv(SkipProfileEnv) != ""
}

// apiFail wraps a client error into an envelope with operation context.
func apiFail(err error, context string) *output.Response {
	if apiErr, ok := err.(*api.Error); ok {
		return output.FromAPIError(apiErr, context)
	}
	return output.ErrWithDetails(500, context, output.ErrKindAPI, err.Error())
}
