package commands

import (
	"context"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// CategoryList lists browse categories.
func (h *Handler) CategoryList(ctx context.Context, limit, offset int) *output.Response {
	return h.getResource(ctx, api.CategoriesPath(api.ClampLimit(limit), offset),
		"Browse categories", "List categories", output.KindCategoryList)
}

// CategoryGet shows one browse category.
func (h *Handler) CategoryGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "category id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.CategoryPath(id), "Category", "Get category", output.KindCategory)
}

// CategoryPlaylists lists playlists curated under a category.
func (h *Handler) CategoryPlaylists(ctx context.Context, id string, limit, offset int) *output.Response {
	if errResp := requireID(id, "category id"); errResp != nil {
		return errResp
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		raw, err := c.Get(ctx, api.CategoryPlaylistsPath(id, api.ClampLimit(limit), offset))
		if err != nil {
			return apiFail(err, "Get category playlists")
		}
		payload := raw
		if obj, ok := raw.(map[string]any); ok {
			if playlists, ok := obj["playlists"].(map[string]any); ok {
				payload = playlists
			}
		}
		return output.SuccessTyped(http.StatusOK, "Category playlists", output.KindPlaylistList, payload)
	})
}

// Markets lists the markets where the catalog is available.
func (h *Handler) Markets(ctx context.Context) *output.Response {
	return h.getResource(ctx, api.MarketsPath(), "Available markets", "List markets", output.KindMarkets)
}
