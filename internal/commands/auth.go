package commands

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

// AuthLogin signs the user in. A still-valid token short-circuits unless
// force is set; an expired token with a refresh token is refreshed
// without opening a browser.
func (h *Handler) AuthLogin(ctx context.Context, force bool) *output.Response {
	if !force {
		if token, err := h.tokens.Load(); err == nil {
			if !token.Expired() {
				return output.SuccessWithPayload(http.StatusOK, "Already logged in",
					map[string]any{"expires_in": token.ExpiresIn()})
			}
			if token.RefreshToken != "" {
				if refreshed, err := h.refresh(ctx, token); err == nil {
					if err := h.tokens.Save(refreshed); err != nil {
						return output.ErrWithDetails(500, "Failed to save token", output.ErrKindStorage, err.Error())
					}
					return output.SuccessWithPayload(http.StatusOK, "Token refreshed",
						map[string]any{"expires_in": refreshed.ExpiresIn()})
				}
			}
		}
	}

	token, err := h.login(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrMissingClientID) {
			return output.ErrWithDetails(500, "No client id configured", output.ErrKindConfig,
				"Set client_id in "+shared.ConfigFileName)
		}
		return output.ErrWithDetails(http.StatusUnauthorized, "Login failed", output.ErrKindAuth, err.Error())
	}
	if err := h.tokens.Save(token); err != nil {
		return output.ErrWithDetails(500, "Failed to save token", output.ErrKindStorage, err.Error())
	}

	payload := map[string]any{"expires_in": token.ExpiresIn()}
	if !skipProfile() {
		if c := api.NewClient(token.AccessToken, h.logger, h.apiOpts...); c != nil {
			if user, err := h.currentUser(ctx, c); err == nil {
				payload["display_name"] = user["display_name"]
			}
		}
	}
	return output.SuccessWithPayload(http.StatusOK, "Login successful", payload)
}

// AuthLogout deletes the stored token from every backend.
func (h *Handler) AuthLogout(ctx context.Context) *output.Response {
	if !h.tokens.Exists() {
		return output.Success(http.StatusOK, "Already logged out")
	}
	if err := h.tokens.Delete(); err != nil {
		return output.ErrWithDetails(500, "Failed to delete token", output.ErrKindStorage, err.Error())
	}
	return output.Success(http.StatusOK, "Logged out")
}

// AuthRefresh forces a token refresh.
func (h *Handler) AuthRefresh(ctx context.Context) *output.Response {
	token, err := h.tokens.Load()
	if err != nil {
		return output.Err(http.StatusUnauthorized, "Not logged in. Run: spotify-cli auth login", output.ErrKindAuth)
	}
	refreshed, err := h.refresh(ctx, token)
	if err != nil {
		return output.ErrWithDetails(http.StatusUnauthorized, "Token refresh failed", output.ErrKindAuth, err.Error())
	}
	if err := h.tokens.Save(refreshed); err != nil {
		return output.ErrWithDetails(500, "Failed to save token", output.ErrKindStorage, err.Error())
	}
	return output.SuccessWithPayload(http.StatusOK, "Token refreshed",
		map[string]any{"expires_in": refreshed.ExpiresIn()})
}

// AuthStatus reports whether a token exists and how long it remains
// valid.
func (h *Handler) AuthStatus(ctx context.Context) *output.Response {
	token, err := h.tokens.Load()
	if err != nil {
		return output.SuccessWithPayload(http.StatusOK, "Not logged in",
			map[string]any{"authenticated": false})
	}
	return output.SuccessWithPayload(http.StatusOK, "Logged in", map[string]any{
		"authenticated": true,
		"expired":       token.Expired(),
		"expires_in":    token.ExpiresIn(),
	})
}
