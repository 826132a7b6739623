package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Default pagination bounds for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

func paging(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func idsQuery(ids []string) url.Values {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	return q
}

// Player endpoints.

func PlayerStatePath() string { return "/me/player" }
func PlayPath() string { return "/me/player/play" }
func PausePath() string { return "/me/player/pause" }
func NextPath() string { return "/me/player/next" }
func PreviousPath() string { return "/me/player/previous" }
func DevicesPath() string { return "/me/player/devices" }
func QueuePath() string { return "/me/player/queue" }
func CurrentlyPlayingPath() string { return "/me/player/currently-playing" }
func TransferPlaybackPath() string { return "/me/player" }

func VolumePath(percent int) string {
	return withQuery("/me/player/volume", url.Values{"volume_percent": {strconv.Itoa(percent)}})
}

func ShufflePath(state bool) string {
	return withQuery("/me/player/shuffle", url.Values{"state": {strconv.FormatBool(state)}})
}

func RepeatPath(state string) string {
	return withQuery("/me/player/repeat", url.Values{"state": {state}})
}

func SeekPath(positionMS int) string {
	return withQuery("/me/player/seek", url.Values{"position_ms": {strconv.Itoa(positionMS)}})
}

func AddToQueuePath(uri string) string {
	return withQuery("/me/player/queue", url.Values{"uri": {uri}})
}

func RecentlyPlayedPath(limit int) string {
	return withQuery("/me/player/recently-played", url.Values{"limit": {strconv.Itoa(limit)}})
}

// Playlist endpoints.

func PlaylistPath(id string) string { return "/playlists/" + id }
func PlaylistCoverPath(id string) string { return "/playlists/" + id + "/images" }
func PlaylistFollowPath(id string) string { return "/playlists/" + id + "/followers" }

func PlaylistTracksPath(id string, limit, offset int) string {
	return withQuery("/playlists/"+id+"/tracks", paging(limit, offset))
}

func PlaylistTracksWritePath(id string) string { return "/playlists/" + id + "/tracks" }

func PlaylistFollowersContainsPath(id string, userIDs []string) string {
	return withQuery("/playlists/"+id+"/followers/contains", idsQuery(userIDs))
}

func MyPlaylistsPath(limit, offset int) string {
	return withQuery("/me/playlists", paging(limit, offset))
}

func UserPlaylistsPath(userID string, limit, offset int) string {
	return withQuery("/users/"+userID+"/playlists", paging(limit, offset))
}

func CreatePlaylistPath(userID string) string { return "/users/" + userID + "/playlists" }

// Library endpoints. resource is the plural segment: tracks, albums,
// shows, episodes, audiobooks.

func SavedPath(resource string, limit, offset int) string {
	return withQuery("/me/"+resource, paging(limit, offset))
}

func SavedWritePath(resource string, ids []string) string {
	return withQuery("/me/"+resource, idsQuery(ids))
}

func SavedContainsPath(resource string, ids []string) string {
	return withQuery("/me/"+resource+"/contains", idsQuery(ids))
}

// Catalog endpoints.

func TrackPath(id string) string { return "/tracks/" + id }
func AlbumPath(id string) string { return "/albums/" + id }
func ArtistPath(id string) string { return "/artists/" + id }
func ShowPath(id string) string { return "/shows/" + id }
func EpisodePath(id string) string { return "/episodes/" + id }
func AudiobookPath(id string) string { return "/audiobooks/" + id }
func ChapterPath(id string) string { return "/chapters/" + id }

func SeveralPath(resource string, ids []string) string {
	return withQuery("/"+resource, idsQuery(ids))
}

func AlbumTracksPath(id string, limit, offset int) string {
	return withQuery("/albums/"+id+"/tracks", paging(limit, offset))
}

func NewReleasesPath(limit, offset int) string {
	return withQuery("/browse/new-releases", paging(limit, offset))
}

func ArtistTopTracksPath(id, market string) string {
	return withQuery("/artists/"+id+"/top-tracks", url.Values{"market": {market}})
}

func ArtistAlbumsPath(id string, limit, offset int) string {
	return withQuery("/artists/"+id+"/albums", paging(limit, offset))
}

func RelatedArtistsPath(id string) string { return "/artists/" + id + "/related-artists" }

func ShowEpisodesPath(id string, limit, offset int) string {
	return withQuery("/shows/"+id+"/episodes", paging(limit, offset))
}

func AudiobookChaptersPath(id string, limit, offset int) string {
	return withQuery("/audiobooks/"+id+"/chapters", paging(limit, offset))
}

// User endpoints.

func MePath() string { return "/me" }
func UserPath(id string) string { return "/users/" + id }

func TopItemsPath(itemType, timeRange string, limit, offset int) string {
	q := paging(limit, offset)
	q.Set("time_range", timeRange)
	return withQuery("/me/top/"+itemType, q)
}

// Follow endpoints. followType is "artist" or "user".

func FollowedArtistsPath(limit int) string {
	q := url.Values{"type": {"artist"}, "limit": {strconv.Itoa(limit)}}
	return withQuery("/me/following", q)
}

func FollowPath(followType string, ids []string) string {
	q := idsQuery(ids)
	q.Set("type", followType)
	return withQuery("/me/following", q)
}

func FollowContainsPath(followType string, ids []string) string {
	q := idsQuery(ids)
	q.Set("type", followType)
	return withQuery("/me/following/contains", q)
}

// Browse endpoints.

func CategoriesPath(limit, offset int) string {
	return withQuery("/browse/categories", paging(limit, offset))
}

func CategoryPath(id string) string { return "/browse/categories/" + id }

func CategoryPlaylistsPath(id string, limit, offset int) string {
	return withQuery("/browse/categories/"+id+"/playlists", paging(limit, offset))
}

func MarketsPath() string { return "/markets" }

// SearchPath builds the search endpoint for a query and singular type
// names (track, album, artist, playlist, show, episode, audiobook).
func SearchPath(query string, types []string, limit, offset int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", strings.Join(types, ","))
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return withQuery("/search", q)
}

// ClampLimit bounds a user-supplied limit to [1, MaxLimit], defaulting
// when unset.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
