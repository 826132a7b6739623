package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// UserProfile shows the current user's profile.
func (h *Handler) UserProfile(ctx context.Context) *output.Response {
	return h.getResource(ctx, api.MePath(), "Your profile", "Get profile", output.KindUser)
}

// UserGet shows another user's public profile.
func (h *Handler) UserGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "user id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.UserPath(id), "User profile", "Get user", output.KindUser)
}

// UserTop lists the user's top tracks or artists over a time range
// (short_term, medium_term, long_term).
func (h *Handler) UserTop(ctx context.Context, itemType, timeRange string, limit, offset int) *output.Response {
	switch itemType {
	case "tracks", "artists":
	default:
		return output.Err(http.StatusBadRequest, "Top item type must be 'tracks' or 'artists'", output.ErrKindValidation)
	}
	switch timeRange {
	case "":
		timeRange = "medium_term"
	case "short_term", "medium_term", "long_term":
	default:
		return output.Err(http.StatusBadRequest,
			"Time range must be 'short_term', 'medium_term', or 'long_term'", output.ErrKindValidation)
	}
	kind := output.KindTopTracks
	if itemType == "artists" {
		kind = output.KindTopArtists
	}
	return h.getResource(ctx, api.TopItemsPath(itemType, timeRange, api.ClampLimit(limit), offset),
		fmt.Sprintf("Your top %s (%s)", itemType, timeRange), "Get top items", kind)
}

// FollowedArtists lists artists the user follows.
func (h *Handler) FollowedArtists(ctx context.Context, limit int) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		raw, err := c.Get(ctx, api.FollowedArtistsPath(api.ClampLimit(limit)))
		if err != nil {
			return apiFail(err, "Get followed artists")
		}
		payload := raw
		if obj, ok := raw.(map[string]any); ok {
			if artists, ok := obj["artists"].(map[string]any); ok {
				payload = artists
			}
		}
		return output.SuccessTyped(http.StatusOK, "Followed artists", output.KindFollowedArtists, payload)
	})
}

// Follow follows artists or users by id.
func (h *Handler) Follow(ctx context.Context, followType string, ids []string) *output.Response {
	if errResp := validFollowType(followType); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if _, err := c.Put(ctx, api.FollowPath(followType, ids), nil); err != nil {
			return apiFail(err, "Follow")
		}
		return output.Success(http.StatusOK, fmt.Sprintf("Followed %d %s(s)", len(ids), followType))
	})
}

// Unfollow unfollows artists or users by id.
func (h *Handler) Unfollow(ctx context.Context, followType string, ids []string) *output.Response {
	if errResp := validFollowType(followType); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if _, err := c.Delete(ctx, api.FollowPath(followType, ids), nil); err != nil {
			return apiFail(err, "Unfollow")
		}
		return output.Success(http.StatusOK, fmt.Sprintf("Unfollowed %d %s(s)", len(ids), followType))
	})
}

// FollowCheck reports, per id, whether the user follows each one.
func (h *Handler) FollowCheck(ctx context.Context, followType string, ids []string) *output.Response {
	if errResp := validFollowType(followType); errResp != nil {
		return errResp
	}
	if errResp := requireIDs(ids, "id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.FollowContainsPath(followType, ids),
		"Follow check", "Check following", output.KindLibraryCheck)
}

func validFollowType(followType string) *output.Response {
	if followType != "artist" && followType != "user" {
		return output.Err(http.StatusBadRequest, "Follow type must be 'artist' or 'user'", output.ErrKindValidation)
	}
	return nil
}
