package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// PlayerStatus reports the current playback state.
func (h *Handler) PlayerStatus(ctx context.Context) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.PlayerStatePath())
		if err != nil {
			return apiFail(err, "Get playback state")
		}
		if payload == nil {
			return output.Success(http.StatusOK, "Nothing playing")
		}
		return output.SuccessTyped(http.StatusOK, "Playback state", output.KindPlayerStatus, payload)
	})
}

// PlayerPlay starts or resumes playback. With a uri or pin the target is
// played; bare calls resume, but only after checking the player isn't
// already going, since the remote rejects a resume mid-play.
func (h *Handler) PlayerPlay(ctx context.Context, uri, pin string) *output.Response {
	if pin != "" {
		store, errResp := h.pinStore()
		if errResp != nil {
			return errResp
		}
		p, ok := store.FindByAlias(pin)
		if !ok {
			return output.Err(http.StatusNotFound, fmt.Sprintf("Pin not found: %q", pin), output.ErrKindNotFound)
		}
		uri = p.SpotifyURI()
	}

	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if uri == "" {
			if state, err := c.Get(ctx, api.PlayerStatePath()); err == nil {
				if obj, ok := state.(map[string]any); ok {
					if playing, _ := obj["is_playing"].(bool); playing {
						return output.Success(http.StatusOK, "Already playing")
					}
				}
			}
			if _, err := c.Put(ctx, api.PlayPath(), nil); err != nil {
				return apiFail(err, "Start playback")
			}
			return output.Success(http.StatusNoContent, "Playback started")
		}

		if _, err := c.Put(ctx, api.PlayPath(), playBody(uri)); err != nil {
			return apiFail(err, "Start playback")
		}
		return output.Success(http.StatusNoContent, fmt.Sprintf("Playing %s", uri))
	})
}

// playBody routes track URIs through the uris list and every other kind
// through context_uri.
func playBody(uri string) map[string]any {
	if strings.HasPrefix(uri, "spotify:track:") {
		return map[string]any{"uris": []string{uri}}
	}
	return map[string]any{"context_uri": uri}
}

// PlayerPause pauses playback.
func (h *Handler) PlayerPause(ctx context.Context) *output.Response {
	return h.simplePlayerCall(ctx, http.MethodPut, api.PausePath(), "Playback paused", "Pause playback")
}

// PlayerToggle pauses when playing and resumes when paused.
func (h *Handler) PlayerToggle(ctx context.Context) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		state, err := c.Get(ctx, api.PlayerStatePath())
		if err != nil {
			return apiFail(err, "Get playback state")
		}
		obj, _ := state.(map[string]any)
		if playing, _ := obj["is_playing"].(bool); playing {
			if _, err := c.Put(ctx, api.PausePath(), nil); err != nil {
				return apiFail(err, "Pause playback")
			}
			return output.Success(http.StatusNoContent, "Playback paused")
		}
		if _, err := c.Put(ctx, api.PlayPath(), nil); err != nil {
			return apiFail(err, "Start playback")
		}
		return output.Success(http.StatusNoContent, "Playback started")
	})
}

// PlayerNext skips forward.
func (h *Handler) PlayerNext(ctx context.Context) *output.Response {
	return h.simplePlayerCall(ctx, http.MethodPost, api.NextPath(), "Skipped to next track", "Skip track")
}

// PlayerPrevious skips backward.
func (h *Handler) PlayerPrevious(ctx context.Context) *output.Response {
	return h.simplePlayerCall(ctx, http.MethodPost, api.PreviousPath(), "Skipped to previous track", "Skip back")
}

// PlayerVolume sets the volume percentage.
func (h *Handler) PlayerVolume(ctx context.Context, percent int) *output.Response {
	if percent < 0 || percent > 100 {
		return output.Err(http.StatusBadRequest, "Volume must be between 0 and 100", output.ErrKindValidation)
	}
	return h.simplePlayerCall(ctx, http.MethodPut, api.VolumePath(percent),
		fmt.Sprintf("Volume set to %d%%", percent), "Set volume")
}

// PlayerShuffle toggles shuffle mode ("on" or "off").
func (h *Handler) PlayerShuffle(ctx context.Context, state string) *output.Response {
	if state != "on" && state != "off" {
		return output.Err(http.StatusBadRequest, "Shuffle state must be 'on' or 'off'", output.ErrKindValidation)
	}
	return h.simplePlayerCall(ctx, http.MethodPut, api.ShufflePath(state == "on"),
		fmt.Sprintf("Shuffle %s", state), "Set shuffle")
}

// PlayerRepeat sets the repeat mode: off, track, or context.
func (h *Handler) PlayerRepeat(ctx context.Context, state string) *output.Response {
	switch state {
	case "off", "track", "context":
	default:
		return output.Err(http.StatusBadRequest, "Repeat state must be 'off', 'track', or 'context'", output.ErrKindValidation)
	}
	return h.simplePlayerCall(ctx, http.MethodPut, api.RepeatPath(state),
		fmt.Sprintf("Repeat %s", state), "Set repeat")
}

// PlayerSeek jumps to a position in the current track.
func (h *Handler) PlayerSeek(ctx context.Context, positionMS int) *output.Response {
	if positionMS < 0 {
		return output.Err(http.StatusBadRequest, "Position must not be negative", output.ErrKindValidation)
	}
	return h.simplePlayerCall(ctx, http.MethodPut, api.SeekPath(positionMS),
		fmt.Sprintf("Seeked to %dms", positionMS), "Seek")
}

// PlayerTransfer moves playback to another device.
func (h *Handler) PlayerTransfer(ctx context.Context, deviceID string, play bool) *output.Response {
	if deviceID == "" {
		return output.Err(http.StatusBadRequest, "Missing 'device' parameter", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		body := map[string]any{"device_ids": []string{deviceID}, "play": play}
		if _, err := c.Put(ctx, api.TransferPlaybackPath(), body); err != nil {
			return apiFail(err, "Transfer playback")
		}
		return output.Success(http.StatusNoContent, "Playback transferred")
	})
}

// PlayerDevices lists available devices.
func (h *Handler) PlayerDevices(ctx context.Context) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.DevicesPath())
		if err != nil {
			return apiFail(err, "List devices")
		}
		return output.SuccessTyped(http.StatusOK, "Available devices", output.KindDevices, payload)
	})
}

// PlayerCurrentlyPlaying reports the current track only.
func (h *Handler) PlayerCurrentlyPlaying(ctx context.Context) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.CurrentlyPlayingPath())
		if err != nil {
			return apiFail(err, "Get current track")
		}
		if payload == nil {
			return output.Success(http.StatusOK, "Nothing playing")
		}
		return output.SuccessTyped(http.StatusOK, "Currently playing", output.KindPlayerStatus, payload)
	})
}

// PlayerRecentlyPlayed lists the listening history.
func (h *Handler) PlayerRecentlyPlayed(ctx context.Context, limit int) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.RecentlyPlayedPath(api.ClampLimit(limit)))
		if err != nil {
			return apiFail(err, "Get play history")
		}
		return output.SuccessTyped(http.StatusOK, "Recently played", output.KindPlayHistory, payload)
	})
}

// QueueList shows the current play queue.
func (h *Handler) QueueList(ctx context.Context) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		payload, err := c.Get(ctx, api.QueuePath())
		if err != nil {
			return apiFail(err, "Get queue")
		}
		return output.SuccessTyped(http.StatusOK, "Play queue", output.KindQueue, payload)
	})
}

// QueueAdd appends a track or pin target to the queue.
func (h *Handler) QueueAdd(ctx context.Context, uri, pin string) *output.Response {
	if pin != "" {
		store, errResp := h.pinStore()
		if errResp != nil {
			return errResp
		}
		p, ok := store.FindByAlias(pin)
		if !ok {
			return output.Err(http.StatusNotFound, fmt.Sprintf("Pin not found: %q", pin), output.ErrKindNotFound)
		}
		uri = p.SpotifyURI()
	}
	if uri == "" {
		return output.Err(http.StatusBadRequest, "Provide a track URI or --pin", output.ErrKindValidation)
	}
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		if _, err := c.Post(ctx, api.AddToQueuePath(uri), nil); err != nil {
			return apiFail(err, "Add to queue")
		}
		return output.Success(http.StatusNoContent, fmt.Sprintf("Queued %s", uri))
	})
}

// simplePlayerCall wraps the bodyless player verbs.
func (h *Handler) simplePlayerCall(ctx context.Context, method, path, successMsg, context string) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		var err error
		switch method {
		case http.MethodPost:
			_, err = c.Post(ctx, path, nil)
		default:
			_, err = c.Put(ctx, path, nil)
		}
		if err != nil {
			return apiFail(err, context)
		}
		return output.Success(http.StatusNoContent, successMsg)
	})
}
