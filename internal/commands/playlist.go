package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

const (
	playlistPageSize = 50
	addChunkSize     = 100
)

// resolvePlaylist turns an alias, name, id, URL, or URI into a playlist
// id. The pin store is consulted first; id-shaped input passes through;
// anything else is matched by exact name against the user's playlists.
func (h *Handler) resolvePlaylist(ctx context.Context, c *api.Client, input string) (string, *output.Response) {
	if input == "" {
		return "", output.Err(http.StatusBadRequest, "Missing playlist identifier", output.ErrKindValidation)
	}
	if store, errResp := h.pinStore(); errResp == nil {
		if pin, ok := store.FindByAlias(input); ok && pin.Kind == storage.KindPlaylist {
			return pin.ID, nil
		}
	}
	id := storage.ExtractID(input)
	if idShaped(id) {
		return id, nil
	}
	offset := 0
	for {
		raw, err := c.Get(ctx, api.MyPlaylistsPath(playlistPageSize, offset))
		if err != nil {
			return "", apiFail(err, "List playlists")
		}
		page, _ := raw.(map[string]any)
		items, _ := page["items"].([]any)
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if name, _ := item["name"].(string); strings.EqualFold(name, input) {
				if found, ok := item["id"].(string); ok {
					return found, nil
				}
			}
		}
		if len(items) < playlistPageSize {
			break
		}
		offset += playlistPageSize
	}
	return "", output.Err(http.StatusNotFound,
		fmt.Sprintf("Playlist not found: %q. Pass an id, URL, or exact name", input),
		output.ErrKindNotFound)
}

// idShaped reports whether s looks like a bare Spotify id: alphanumeric
// with no spaces.
func idShaped(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// PlaylistList lists the current user's playlists.
func (h *Handler) PlaylistList(ctx context.Context, limit, offset int) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.MyPlaylistsPath(api.ClampLimit(limit), offset))
		if err != nil {
			return apiFail(err, "List playlists")
		}
		return output.SuccessTyped(http.StatusOK, "Your playlists", output.KindPlaylistList, payload)
	})
}

// PlaylistUser lists another user's public playlists.
func (h *Handler) PlaylistUser(ctx context.Context, userID string, limit, offset int) *output.Response {
	if userID == "" {
		return output.Err(http.StatusBadRequest, "Missing user id", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.UserPlaylistsPath(userID, api.ClampLimit(limit), offset))
		if err != nil {
			return apiFail(err, "List user playlists")
		}
		return output.SuccessTyped(http.StatusOK, fmt.Sprintf("Playlists for %s", userID), output.KindPlaylistList, payload)
	})
}

// PlaylistGet shows a playlist's detail.
func (h *Handler) PlaylistGet(ctx context.Context, idOrName string) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		payload, err := c.Get(ctx, api.PlaylistPath(id))
		if err != nil {
			return apiFail(err, "Get playlist")
		}
		return output.SuccessTyped(http.StatusOK, "Playlist", output.KindPlaylist, payload)
	})
}

// PlaylistTracks lists a playlist's tracks.
func (h *Handler) PlaylistTracks(ctx context.Context, idOrName string, limit, offset int) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		payload, err := c.Get(ctx, api.PlaylistTracksPath(id, api.ClampLimit(limit), offset))
		if err != nil {
			return apiFail(err, "Get playlist tracks")
		}
		return output.SuccessTyped(http.StatusOK, "Playlist tracks", output.KindSavedTracks, payload)
	})
}

// PlaylistCreate makes a new playlist for the current user.
func (h *Handler) PlaylistCreate(ctx context.Context, name, description string, public bool) *output.Response {
	if name == "" {
		return output.Err(http.StatusBadRequest, "Missing playlist name", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		user, apiErr := h.currentUser(ctx, c)
		if apiErr != nil {
			return apiFail(apiErr, "Get profile")
		}
		userID, _ := user["id"].(string)
		body := map[string]any{"name": name, "public": public}
		if description != "" {
			body["description"] = description
		}
		payload, err := c.Post(ctx, api.CreatePlaylistPath(userID), body)
		if err != nil {
			return apiFail(err, "Create playlist")
		}
		return output.SuccessTyped(http.StatusCreated, fmt.Sprintf("Created playlist %q", name), output.KindPlaylist, payload)
	})
}

// PlaylistAdd appends tracks to a playlist. With nowPlaying the current
// track is added instead of explicit URIs. position inserts at an index
// when non-negative.
func (h *Handler) PlaylistAdd(ctx context.Context, idOrName string, uris []string, nowPlaying bool, position int, dryRun bool) *output.Response {
	if len(uris) == 0 && !nowPlaying {
		return output.Err(http.StatusBadRequest, "Provide track URIs or use --now-playing", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if nowPlaying {
			state, err := c.Get(ctx, api.PlayerStatePath())
			if err != nil {
				return apiFail(err, "Get playback state")
			}
			obj, _ := state.(map[string]any)
			item, _ := obj["item"].(map[string]any)
			uri, _ := item["uri"].(string)
			if uri == "" {
				return output.Err(http.StatusNotFound, "Nothing is playing", output.ErrKindPlayer)
			}
			uris = append(uris, uri)
		}
		if dryRun {
			payload := map[string]any{"playlist_id": id, "uris": uris, "dry_run": true}
			return output.SuccessWithPayload(http.StatusOK, fmt.Sprintf("Would add %d track(s)", len(uris)), payload)
		}
		body := map[string]any{"uris": uris}
		if position >= 0 {
			body["position"] = position
		}
		if _, err := c.Post(ctx, api.PlaylistTracksWritePath(id), body); err != nil {
			return apiFail(err, "Add tracks")
		}
		return output.Success(http.StatusCreated, fmt.Sprintf("Added %d track(s)", len(uris)))
	})
}

// PlaylistRemove removes tracks from a playlist by URI.
func (h *Handler) PlaylistRemove(ctx context.Context, idOrName string, uris []string, dryRun bool) *output.Response {
	if len(uris) == 0 {
		return output.Err(http.StatusBadRequest, "Provide track URIs to remove", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if dryRun {
			payload := map[string]any{"playlist_id": id, "uris": uris, "dry_run": true}
			return output.SuccessWithPayload(http.StatusOK, fmt.Sprintf("Would remove %d track(s)", len(uris)), payload)
		}
		if _, err := c.Delete(ctx, api.PlaylistTracksWritePath(id), removeBody(uris)); err != nil {
			return apiFail(err, "Remove tracks")
		}
		return output.Success(http.StatusOK, fmt.Sprintf("Removed %d track(s)", len(uris)))
	})
}

func removeBody(uris []string) map[string]any {
	tracks := make([]map[string]any, len(uris))
	for i, uri := range uris {
		tracks[i] = map[string]any{"uri": uri}
	}
	return map[string]any{"tracks": tracks}
}

// PlaylistEdit changes a playlist's name, description, or visibility.
func (h *Handler) PlaylistEdit(ctx context.Context, idOrName, name, description string, public *bool) *output.Response {
	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if description != "" {
		body["description"] = description
	}
	if public != nil {
		body["public"] = *public
	}
	if len(body) == 0 {
		return output.Err(http.StatusBadRequest, "Nothing to change. Provide --name, --description, or --public", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if _, err := c.Put(ctx, api.PlaylistPath(id), body); err != nil {
			return apiFail(err, "Edit playlist")
		}
		return output.Success(http.StatusOK, "Playlist updated")
	})
}

// PlaylistReorder moves a range of tracks to a new position.
func (h *Handler) PlaylistReorder(ctx context.Context, idOrName string, rangeStart, insertBefore, rangeLength int) *output.Response {
	if rangeStart < 0 || insertBefore < 0 {
		return output.Err(http.StatusBadRequest, "Positions must not be negative", output.ErrKindValidation)
	}
	if rangeLength <= 0 {
		rangeLength = 1
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		body := map[string]any{
			"range_start":   rangeStart,
			"insert_before": insertBefore,
			"range_length":  rangeLength,
		}
		if _, err := c.Put(ctx, api.PlaylistTracksWritePath(id), body); err != nil {
			return apiFail(err, "Reorder tracks")
		}
		return output.Success(http.StatusOK,
			fmt.Sprintf("Moved %d track(s) from position %d to %d", rangeLength, rangeStart, insertBefore))
	})
}

// PlaylistFollow follows a playlist, optionally privately.
func (h *Handler) PlaylistFollow(ctx context.Context, idOrName string, public bool) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if _, err := c.Put(ctx, api.PlaylistFollowPath(id), map[string]any{"public": public}); err != nil {
			return apiFail(err, "Follow playlist")
		}
		return output.Success(http.StatusOK, "Playlist followed")
	})
}

// PlaylistUnfollow unfollows a playlist.
func (h *Handler) PlaylistUnfollow(ctx context.Context, idOrName string) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if _, err := c.Delete(ctx, api.PlaylistFollowPath(id), nil); err != nil {
			return apiFail(err, "Unfollow playlist")
		}
		return output.Success(http.StatusOK, "Playlist unfollowed")
	})
}

// PlaylistCover uploads a JPEG cover image from a local file.
func (h *Handler) PlaylistCover(ctx context.Context, idOrName, imagePath string) *output.Response {
	if imagePath == "" {
		return output.Err(http.StatusBadRequest, "Missing image path", output.ErrKindValidation)
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return output.Err(http.StatusBadRequest, "Failed to read image: "+err.Error(), output.ErrKindValidation)
	}
	encoded := []byte(base64.StdEncoding.EncodeToString(data))
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		if _, err := c.PutRaw(ctx, api.PlaylistCoverPath(id), "image/jpeg", encoded); err != nil {
			return apiFail(err, "Upload cover")
		}
		return output.Success(http.StatusAccepted, "Cover image uploaded")
	})
}

// PlaylistDuplicate copies a playlist into a new private one owned by the
// current user.
func (h *Handler) PlaylistDuplicate(ctx context.Context, idOrName, newName string) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		raw, err := c.Get(ctx, api.PlaylistPath(id))
		if err != nil {
			return apiFail(err, "Get playlist")
		}
		source, _ := raw.(map[string]any)
		if newName == "" {
			sourceName, _ := source["name"].(string)
			newName = sourceName + " (Copy)"
		}
		user, apiErr := h.currentUser(ctx, c)
		if apiErr != nil {
			return apiFail(apiErr, "Get profile")
		}
		userID, _ := user["id"].(string)
		created, err := c.Post(ctx, api.CreatePlaylistPath(userID), map[string]any{"name": newName, "public": false})
		if err != nil {
			return apiFail(err, "Create playlist")
		}
		createdObj, _ := created.(map[string]any)
		newID, _ := createdObj["id"].(string)

		uris := embeddedTrackURIs(source)
		if len(uris) > 0 {
			if err := addInChunks(ctx, c, newID, uris); err != nil {
				return output.ErrWithDetails(http.StatusInternalServerError,
					"Created playlist but failed to copy tracks", output.ErrKindAPI, err.Error())
			}
		}
		return output.SuccessTyped(http.StatusCreated,
			fmt.Sprintf("Duplicated playlist as '%s'", newName), output.KindPlaylist, created)
	})
}

// embeddedTrackURIs pulls track URIs out of a playlist detail payload.
func embeddedTrackURIs(playlist map[string]any) []string {
	tracks, _ := playlist["tracks"].(map[string]any)
	items, _ := tracks["items"].([]any)
	uris := make([]string, 0, len(items))
	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		track, _ := item["track"].(map[string]any)
		if uri, _ := track["uri"].(string); uri != "" {
			uris = append(uris, uri)
		}
	}
	return uris
}

// addInChunks posts URIs in batches of the remote's per-request maximum.
func addInChunks(ctx context.Context, c *api.Client, playlistID string, uris []string) error {
	for start := 0; start < len(uris); start += addChunkSize {
		end := start + addChunkSize
		if end > len(uris) {
			end = len(uris)
		}
		if _, err := c.Post(ctx, api.PlaylistTracksWritePath(playlistID), map[string]any{"uris": uris[start:end]}); err != nil {
			return err
		}
	}
	return nil
}

// removeInChunks deletes URIs in batches of the remote's per-request
// maximum.
func removeInChunks(ctx context.Context, c *api.Client, playlistID string, uris []string) error {
	for start := 0; start < len(uris); start += addChunkSize {
		end := start + addChunkSize
		if end > len(uris) {
			end = len(uris)
		}
		if _, err := c.Delete(ctx, api.PlaylistTracksWritePath(playlistID), removeBody(uris[start:end])); err != nil {
			return err
		}
	}
	return nil
}

// playlistItem pairs a track's URI with its display name for dedup
// reporting.
type playlistItem struct {
	id, uri, name string
}

// fetchAllTracks pages through a playlist, preserving order.
func fetchAllTracks(ctx context.Context, c *api.Client, playlistID string) ([]playlistItem, error) {
	var all []playlistItem
	offset := 0
	for {
		raw, err := c.Get(ctx, api.PlaylistTracksPath(playlistID, playlistPageSize, offset))
		if err != nil {
			return nil, err
		}
		page, _ := raw.(map[string]any)
		items, _ := page["items"].([]any)
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			track, _ := item["track"].(map[string]any)
			id, _ := track["id"].(string)
			uri, _ := track["uri"].(string)
			name, _ := track["name"].(string)
			if uri == "" {
				continue
			}
			all = append(all, playlistItem{id: id, uri: uri, name: name})
		}
		if len(items) < playlistPageSize {
			break
		}
		offset += playlistPageSize
	}
	return all, nil
}

// PlaylistDedup removes duplicate tracks while preserving the first
// occurrence of each. The remote's position-based removal is unreliable
// when the same track appears twice, so the playlist is cleared and
// rebuilt from the unique URIs.
func (h *Handler) PlaylistDedup(ctx context.Context, idOrName string, dryRun bool) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		id, errResp := h.resolvePlaylist(ctx, c, idOrName)
		if errResp != nil {
			return errResp
		}
		all, err := fetchAllTracks(ctx, c, id)
		if err != nil {
			return apiFail(err, "Get playlist tracks")
		}
		if len(all) == 0 {
			return output.Success(http.StatusOK, "Playlist is empty, nothing to deduplicate")
		}

		seen := make(map[string]bool, len(all))
		var unique []string
		var duplicates []string
		for _, item := range all {
			if seen[item.id] {
				duplicates = append(duplicates, item.name)
				continue
			}
			seen[item.id] = true
			unique = append(unique, item.uri)
		}
		if len(duplicates) == 0 {
			return output.Success(http.StatusOK, "No duplicates found")
		}
		if dryRun {
			payload := map[string]any{
				"duplicates":    duplicates,
				"total_tracks":  len(all),
				"unique_tracks": len(unique),
			}
			return output.SuccessWithPayload(http.StatusOK,
				fmt.Sprintf("Would remove %d duplicate(s)", len(duplicates)), payload)
		}

		allURIs := make([]string, len(all))
		for i, item := range all {
			allURIs[i] = item.uri
		}
		if err := removeInChunks(ctx, c, id, allURIs); err != nil {
			return output.ErrWithDetails(http.StatusInternalServerError,
				"Failed to clear playlist", output.ErrKindAPI, err.Error())
		}
		if len(unique) > 0 {
			if err := addInChunks(ctx, c, id, unique); err != nil {
				return output.ErrWithDetails(http.StatusInternalServerError,
					"Failed to restore unique tracks", output.ErrKindAPI, err.Error())
			}
		}
		return output.Success(http.StatusOK,
			fmt.Sprintf("Removed %d duplicate(s), %d track(s) remain", len(duplicates), len(unique)))
	})
}
