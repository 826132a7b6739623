package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// libraryResources maps each saveable resource name to the payload kind
// of its listing.
var libraryResources = map[string]output.PayloadKind{
	"tracks":     output.KindSavedTracks,
	"albums":     output.KindSavedAlbums,
	"shows":      output.KindSavedShows,
	"episodes":   output.KindSavedEpisodes,
	"audiobooks": output.KindSavedAudiobooks,
}

func libraryKind(resource string) (output.PayloadKind, *output.Response) {
	kind, ok := libraryResources[resource]
	if !ok {
		return "", output.Err(http.StatusBadRequest,
			fmt.Sprintf("Unknown library resource %q (valid: tracks, albums, shows, episodes, audiobooks)", resource),
			output.ErrKindValidation)
	}
	return kind, nil
}

// LibraryList lists the user's saved items of one resource type.
func (h *Handler) LibraryList(ctx context.Context, resource string, limit, offset int) *output.Response {
	kind, errResp := libraryKind(resource)
	if errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.SavedPath(resource, api.ClampLimit(limit), offset),
		fmt.Sprintf("Saved %s", resource), "List library", kind)
}

// LibrarySave saves items to the user's library.
func (h *Handler) LibrarySave(ctx context.Context, resource string, ids []string) *output.Response {
	if _, errResp := libraryKind(resource); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if _, err := c.Put(ctx, api.SavedWritePath(resource, ids), nil); err != nil {
			return apiFail(err, "Save to library")
		}
		return output.Success(http.StatusOK, fmt.Sprintf("Saved %d item(s)", len(ids)))
	})
}

// LibraryRemove removes items from the user's library.
func (h *Handler) LibraryRemove(ctx context.Context, resource string, ids []string) *output.Response {
	if _, errResp := libraryKind(resource); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if _, err := c.Delete(ctx, api.SavedWritePath(resource, ids), nil); err != nil {
			return apiFail(err, "Remove from library")
		}
		return output.Success(http.StatusOK, fmt.Sprintf("Removed %d item(s)", len(ids)))
	})
}

// LibraryCheck reports, per id, whether each item is saved.
func (h *Handler) LibraryCheck(ctx context.Context, resource string, ids []string) *output.Response {
	if _, errResp := libraryKind(resource); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.SavedContainsPath(resource, ids),
		"Library check", "Check library", output.KindLibraryCheck)
}
