package rpc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/commands"
	"github.com/desertthunder/spotify-cli/internal/output"
)

// Dispatcher maps JSON-RPC method names onto command handlers. Every
// operation the CLI offers is reachable here with the same semantics.
type Dispatcher struct {
	handler *commands.Handler
	version string
}

// NewDispatcher wires a dispatcher around the shared command handler.
func NewDispatcher(handler *commands.Handler, version string) *Dispatcher {
	return &Dispatcher{handler: handler, version: version}
}

// Parameter extraction is defensive: a missing or mistyped parameter
// falls back to its default instead of failing the request.

func strParam(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func intParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func strsParam(params map[string]any, key string) []string {
	raw, ok := params[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Dispatch routes one request to its handler and returns the command
// envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *output.Response {
	h := d.handler
	p := req.Params
	if p == nil {
		p = map[string]any{}
	}

	switch req.Method {
	case "ping":
		return output.Success(http.StatusOK, "pong")
	case "version":
		return output.SuccessWithPayload(http.StatusOK, "Version info",
			map[string]any{"name": "spotify-cli", "version": d.version})

	case "auth.login":
		return h.AuthLogin(ctx, boolParam(p, "force", false))
	case "auth.logout":
		return h.AuthLogout(ctx)
	case "auth.refresh":
		return h.AuthRefresh(ctx)
	case "auth.status":
		return h.AuthStatus(ctx)

	case "player.status":
		return h.PlayerStatus(ctx)
	case "player.play":
		return h.PlayerPlay(ctx, strParam(p, "uri", ""), strParam(p, "pin", ""))
	case "player.pause":
		return h.PlayerPause(ctx)
	case "player.toggle":
		return h.PlayerToggle(ctx)
	case "player.next":
		return h.PlayerNext(ctx)
	case "player.previous":
		return h.PlayerPrevious(ctx)
	case "player.seek":
		return h.PlayerSeek(ctx, intParam(p, "position", 0))
	case "player.volume":
		return h.PlayerVolume(ctx, intParam(p, "percent", 50))
	case "player.shuffle":
		return h.PlayerShuffle(ctx, strParam(p, "state", "on"))
	case "player.repeat":
		return h.PlayerRepeat(ctx, strParam(p, "mode", "off"))
	case "player.devices":
		return h.PlayerDevices(ctx)
	case "player.transfer":
		return h.PlayerTransfer(ctx, strParam(p, "device", ""), boolParam(p, "play", false))
	case "player.recent":
		return h.PlayerRecentlyPlayed(ctx, intParam(p, "limit", 20))
	case "player.current":
		return h.PlayerCurrentlyPlaying(ctx)

	case "queue.list":
		return h.QueueList(ctx)
	case "queue.add":
		return h.QueueAdd(ctx, strParam(p, "uri", ""), strParam(p, "pin", ""))

	case "search":
		return h.Search(ctx, commands.SearchOptions{
			Query:    strParam(p, "query", ""),
			Types:    strsParam(p, "types"),
			Limit:    intParam(p, "limit", 20),
			PinsOnly: boolParam(p, "pins_only", false),
			Exact:    boolParam(p, "exact", false),
			Play:     boolParam(p, "play", false),
			Filters: commands.SearchFilters{
				Artist:     strParam(p, "artist", ""),
				Album:      strParam(p, "album", ""),
				Track:      strParam(p, "track", ""),
				Year:       strParam(p, "year", ""),
				Genre:      strParam(p, "genre", ""),
				ISRC:       strParam(p, "isrc", ""),
				UPC:        strParam(p, "upc", ""),
				TagNew:     boolParam(p, "new", false),
				TagHipster: boolParam(p, "hipster", false),
			},
		})

	case "pin.add":
		var tags []string
		if raw := strParam(p, "tags", ""); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}
		return h.PinAdd(ctx, strParam(p, "alias", ""), strParam(p, "id", ""),
			strParam(p, "type", "track"), tags)
	case "pin.remove":
		return h.PinRemove(ctx, strParam(p, "id", ""))
	case "pin.list":
		return h.PinList(ctx, strParam(p, "type", ""))
	case "pin.show":
		return h.PinShow(ctx, strParam(p, "alias", ""))
	case "pin.search":
		return h.PinSearch(ctx, strParam(p, "query", ""))

	case "playlist.list":
		return h.PlaylistList(ctx, intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "playlist.get":
		return h.PlaylistGet(ctx, strParam(p, "id", ""))
	case "playlist.tracks":
		return h.PlaylistTracks(ctx, strParam(p, "id", ""), intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "playlist.create":
		return h.PlaylistCreate(ctx, strParam(p, "name", "New Playlist"),
			strParam(p, "description", ""), boolParam(p, "public", false))
	case "playlist.add":
		return h.PlaylistAdd(ctx, strParam(p, "id", ""), strsParam(p, "uris"),
			boolParam(p, "now_playing", false), intParam(p, "position", -1),
			boolParam(p, "dry_run", false))
	case "playlist.remove":
		return h.PlaylistRemove(ctx, strParam(p, "id", ""), strsParam(p, "uris"),
			boolParam(p, "dry_run", false))
	case "playlist.edit":
		var public *bool
		if v, ok := p["public"].(bool); ok {
			public = &v
		}
		return h.PlaylistEdit(ctx, strParam(p, "id", ""), strParam(p, "name", ""),
			strParam(p, "description", ""), public)
	case "playlist.reorder":
		return h.PlaylistReorder(ctx, strParam(p, "id", ""),
			intParam(p, "from", 0), intParam(p, "to", 0), intParam(p, "count", 1))
	case "playlist.follow":
		return h.PlaylistFollow(ctx, strParam(p, "id", ""), boolParam(p, "public", true))
	case "playlist.unfollow":
		return h.PlaylistUnfollow(ctx, strParam(p, "id", ""))
	case "playlist.duplicate":
		return h.PlaylistDuplicate(ctx, strParam(p, "id", ""), strParam(p, "name", ""))
	case "playlist.cover":
		return h.PlaylistCover(ctx, strParam(p, "id", ""), strParam(p, "file", ""))
	case "playlist.user":
		return h.PlaylistUser(ctx, strParam(p, "user_id", ""),
			intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "playlist.dedup":
		return h.PlaylistDedup(ctx, strParam(p, "id", ""), boolParam(p, "dry_run", false))

	case "library.list":
		return h.LibraryList(ctx, "tracks", intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "library.save":
		return h.LibrarySave(ctx, "tracks", strsParam(p, "ids"))
	case "library.remove":
		return h.LibraryRemove(ctx, "tracks", strsParam(p, "ids"))
	case "library.check":
		return h.LibraryCheck(ctx, "tracks", strsParam(p, "ids"))

	case "info.track":
		return h.InfoTrack(ctx, strParam(p, "id", ""))
	case "info.album":
		return h.InfoAlbum(ctx, strParam(p, "id", ""))
	case "info.artist":
		id := strParam(p, "id", "")
		switch strParam(p, "view", "details") {
		case "top_tracks":
			return h.ArtistTopTracks(ctx, id, strParam(p, "market", ""))
		case "albums":
			return h.ArtistAlbums(ctx, id, intParam(p, "limit", 20), intParam(p, "offset", 0))
		case "related":
			return h.RelatedArtists(ctx, id)
		default:
			return h.InfoArtist(ctx, id)
		}

	case "user.profile":
		return h.UserProfile(ctx)
	case "user.top":
		return h.UserTop(ctx, strParam(p, "type", "tracks"),
			timeRange(strParam(p, "range", "medium")), intParam(p, "limit", 20), 0)
	case "user.get":
		return h.UserGet(ctx, strParam(p, "id", ""))

	case "show.get":
		return h.ShowGet(ctx, strParam(p, "id", ""))
	case "show.episodes":
		return h.ShowEpisodes(ctx, strParam(p, "id", ""), intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "show.list":
		return h.LibraryList(ctx, "shows", intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "show.save":
		return h.LibrarySave(ctx, "shows", strsParam(p, "ids"))
	case "show.remove":
		return h.LibraryRemove(ctx, "shows", strsParam(p, "ids"))
	case "show.check":
		return h.LibraryCheck(ctx, "shows", strsParam(p, "ids"))

	case "episode.get":
		return h.EpisodeGet(ctx, strParam(p, "id", ""))
	case "episode.list":
		return h.LibraryList(ctx, "episodes", intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "episode.save":
		return h.LibrarySave(ctx, "episodes", strsParam(p, "ids"))
	case "episode.remove":
		return h.LibraryRemove(ctx, "episodes", strsParam(p, "ids"))
	case "episode.check":
		return h.LibraryCheck(ctx, "episodes", strsParam(p, "ids"))

	case "audiobook.get":
		return h.AudiobookGet(ctx, strParam(p, "id", ""))
	case "audiobook.chapters":
		return h.AudiobookChapters(ctx, strParam(p, "id", ""), intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "audiobook.list":
		return h.LibraryList(ctx, "audiobooks", intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "audiobook.save":
		return h.LibrarySave(ctx, "audiobooks", strsParam(p, "ids"))
	case "audiobook.remove":
		return h.LibraryRemove(ctx, "audiobooks", strsParam(p, "ids"))
	case "audiobook.check":
		return h.LibraryCheck(ctx, "audiobooks", strsParam(p, "ids"))

	case "album.list":
		return h.LibraryList(ctx, "albums", intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "album.tracks":
		return h.AlbumTracks(ctx, strParam(p, "id", ""), intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "album.save":
		return h.LibrarySave(ctx, "albums", strsParam(p, "ids"))
	case "album.remove":
		return h.LibraryRemove(ctx, "albums", strsParam(p, "ids"))
	case "album.check":
		return h.LibraryCheck(ctx, "albums", strsParam(p, "ids"))
	case "album.newReleases":
		return h.NewReleases(ctx, intParam(p, "limit", 20), intParam(p, "offset", 0))

	case "chapter.get":
		return h.ChapterGet(ctx, strParam(p, "id", ""))

	case "category.list":
		return h.CategoryList(ctx, intParam(p, "limit", 20), intParam(p, "offset", 0))
	case "category.get":
		return h.CategoryGet(ctx, strParam(p, "id", ""))
	case "category.playlists":
		return h.CategoryPlaylists(ctx, strParam(p, "id", ""), intParam(p, "limit", 20), intParam(p, "offset", 0))

	case "follow.artist":
		return h.Follow(ctx, "artist", strsParam(p, "ids"))
	case "follow.user":
		return h.Follow(ctx, "user", strsParam(p, "ids"))
	case "follow.unfollowArtist":
		return h.Unfollow(ctx, "artist", strsParam(p, "ids"))
	case "follow.unfollowUser":
		return h.Unfollow(ctx, "user", strsParam(p, "ids"))
	case "follow.list":
		return h.FollowedArtists(ctx, intParam(p, "limit", 20))
	case "follow.checkArtist":
		return h.FollowCheck(ctx, "artist", strsParam(p, "ids"))
	case "follow.checkUser":
		return h.FollowCheck(ctx, "user", strsParam(p, "ids"))

	case "markets.list":
		return h.Markets(ctx)
	}

	return output.Err(http.StatusNotFound,
		fmt.Sprintf("Method not found: %s", req.Method), output.ErrKindValidation)
}

// timeRange expands the short range names the RPC surface accepts.
func timeRange(r string) string {
	switch r {
	case "short":
		return "short_term"
	case "medium":
		return "medium_term"
	case "long":
		return "long_term"
	default:
		return r
	}
}
