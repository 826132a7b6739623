package commands

import (
	"context"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// Single-resource detail commands. Each accepts an id, URL, or URI.

func (h *Handler) InfoTrack(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "track id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.TrackPath(extract(id)), "Track", "Get track", output.KindTrack)
}

func (h *Handler) InfoAlbum(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "album id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.AlbumPath(extract(id)), "Album", "Get album", output.KindAlbum)
}

func (h *Handler) InfoArtist(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "artist id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.ArtistPath(extract(id)), "Artist", "Get artist", output.KindArtist)
}

func (h *Handler) ShowGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "show id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.ShowPath(extract(id)), "Show", "Get show", output.KindShow)
}

func (h *Handler) EpisodeGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "episode id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.EpisodePath(extract(id)), "Episode", "Get episode", output.KindEpisode)
}

func (h *Handler) AudiobookGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "audiobook id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.AudiobookPath(extract(id)), "Audiobook", "Get audiobook", output.KindAudiobook)
}

func (h *Handler) ChapterGet(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "chapter id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.ChapterPath(extract(id)), "Chapter", "Get chapter", output.KindChapter)
}

// List forms hanging off a single resource.

func (h *Handler) AlbumTracks(ctx context.Context, id string, limit, offset int) *output.Response {
	if errResp := requireID(id, "album id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.AlbumTracksPath(extract(id), api.ClampLimit(limit), offset),
		"Album tracks", "Get album tracks", output.KindTrackList)
}

func (h *Handler) ArtistTopTracks(ctx context.Context, id, market string) *output.Response {
	if errResp := requireID(id, "artist id"); errResp != nil {
		return errResp
	}
	if market == "" {
		market = "US"
	}
	return h.getResource(ctx, api.ArtistTopTracksPath(extract(id), market),
		"Top tracks", "Get artist top tracks", output.KindArtistTopTracks)
}

func (h *Handler) ArtistAlbums(ctx context.Context, id string, limit, offset int) *output.Response {
	if errResp := requireID(id, "artist id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.ArtistAlbumsPath(extract(id), api.ClampLimit(limit), offset),
		"Artist albums", "Get artist albums", output.KindSavedAlbums)
}

func (h *Handler) RelatedArtists(ctx context.Context, id string) *output.Response {
	if errResp := requireID(id, "artist id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.RelatedArtistsPath(extract(id)),
		"Related artists", "Get related artists", output.KindRelatedArtists)
}

func (h *Handler) ShowEpisodes(ctx context.Context, id string, limit, offset int) *output.Response {
	if errResp := requireID(id, "show id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.ShowEpisodesPath(extract(id), api.ClampLimit(limit), offset),
		"Show episodes", "Get show episodes", output.KindEpisodeList)
}

func (h *Handler) AudiobookChapters(ctx context.Context, id string, limit, offset int) *output.Response {
	if errResp := requireID(id, "audiobook id"); errResp != nil {
		return errResp
	}
	return h.getResource(ctx, api.AudiobookChaptersPath(extract(id), api.ClampLimit(limit), offset),
		"Audiobook chapters", "Get audiobook chapters", output.KindChapterList)
}

// NewReleases lists newly released albums. The remote nests the listing
// under an "albums" wrapper, which is unwrapped here.
func (h *Handler) NewReleases(ctx context.Context, limit, offset int) *output.Response {
	return h.withClient(ctx, func(c *api.Client) *output.Response {
		raw, err := c.Get(ctx, api.NewReleasesPath(api.ClampLimit(limit), offset))
		if err != nil {
			return apiFail(err, "Get new releases")
		}
		payload := raw
		if obj, ok := raw.(map[string]any); ok {
			if albums, ok := obj["albums"].(map[string]any); ok {
				payload = albums
			}
		}
		return output.SuccessTyped(http.StatusOK, "New releases", output.KindSavedAlbums, payload)
	})
}
