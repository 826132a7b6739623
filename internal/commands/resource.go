package commands

import (
	"context"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

// getResource fetches a single resource and wraps it in a typed envelope.
// Most read-only commands are this one call with different paths.
func (h *Handler) getResource(ctx context.Context, path, message, context string, kind output.PayloadKind) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, path)
		if err != nil {
			return apiFail(err, context)
		}
		return output.SuccessTyped(http.StatusOK, message, kind, payload)
	})
}

// extract normalizes a URL, URI, or bare id to the id alone.
func extract(idOrURL string) string { return storage.ExtractID(idOrURL) }

// requireID rejects blank resource identifiers before any network call.
func requireID(id, what string) *output.Response {
	if id == "" {
		return output.Err(http.StatusBadRequest, "Missing "+what, output.ErrKindValidation)
	}
	return nil
}

// requireIDs rejects empty id lists.
func requireIDs(ids []string, what string) *output.Response {
	if len(ids) == 0 {
		return output.Err(http.StatusBadRequest, "Provide at least one "+what, output.ErrKindValidation)
	}
	return nil
}
