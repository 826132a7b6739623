package output

import "io"

// playlistsFormatter renders a paginated playlist listing.
type playlistsFormatter struct{}

func (f *playlistsFormatter) Name() string { return "playlists" }

func (f *playlistsFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindPlaylistList, KindFeaturedPlaylists}
}

func (f *playlistsFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "owner")
}

func (f *playlistsFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	src := obj
	if nested := object(obj, "playlists"); nested != nil {
		src = nested
	}
	for i, entry := range array(src, "items") {
		playlist, ok := asObject(entry)
		if !ok {
			continue
		}
		owner := object(playlist, "owner")
		tracks := object(playlist, "tracks")
		line(w, "%d. %s by %s (%d tracks) %s", i+1, str(playlist, "name"),
			str(owner, "display_name"), int(num(tracks, "total")), dimStyle.Render(str(playlist, "id")))
	}
}

// savedTracksFormatter renders the liked-songs listing.
type savedTracksFormatter struct{}

func (f *savedTracksFormatter) Name() string { return "saved-tracks" }

func (f *savedTracksFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindSavedTracks, KindTrackList}
}

func (f *savedTracksFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "added_at") && has(first, "track")
}

func (f *savedTracksFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		track := item
		if wrapped := object(item, "track"); wrapped != nil {
			track = wrapped
		}
		line(w, "%d. %s - %s (%s)", i+1, str(track, "name"),
			artistNames(array(track, "artists")), formatMS(num(track, "duration_ms")))
	}
}

// savedShowsFormatter renders saved podcast shows.
type savedShowsFormatter struct{}

func (f *savedShowsFormatter) Name() string { return "saved-shows" }

func (f *savedShowsFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindSavedShows, KindShowList}
}

func (f *savedShowsFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "show")
}

func (f *savedShowsFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		show := item
		if wrapped := object(item, "show"); wrapped != nil {
			show = wrapped
		}
		line(w, "%d. %s - %s (%d episodes)", i+1, str(show, "name"),
			str(show, "publisher"), int(num(show, "total_episodes")))
	}
}

// showEpisodesFormatter renders a show's episode listing. Episode items
// carry release_date and duration_ms but no album or artists, which keeps
// track listings out.
type showEpisodesFormatter struct{}

func (f *showEpisodesFormatter) Name() string { return "show-episodes" }

func (f *showEpisodesFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindEpisodeList}
}

func (f *showEpisodesFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "release_date") && has(first, "duration_ms") &&
		!has(first, "album") && !has(first, "artists")
}

func (f *showEpisodesFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		episode, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s (%s, %s)", i+1, str(episode, "name"),
			str(episode, "release_date"), formatMS(num(episode, "duration_ms")))
	}
}

// savedEpisodesFormatter renders saved podcast episodes.
type savedEpisodesFormatter struct{}

func (f *savedEpisodesFormatter) Name() string { return "saved-episodes" }

func (f *savedEpisodesFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindSavedEpisodes}
}

func (f *savedEpisodesFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "episode")
}

func (f *savedEpisodesFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		episode := object(item, "episode")
		show := object(episode, "show")
		line(w, "%d. %s - %s", i+1, str(episode, "name"), str(show, "name"))
	}
}

// savedAudiobooksFormatter renders saved audiobooks, whose items are bare
// audiobook objects.
type savedAudiobooksFormatter struct{}

func (f *savedAudiobooksFormatter) Name() string { return "saved-audiobooks" }

func (f *savedAudiobooksFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindSavedAudiobooks, KindAudiobookList}
}

func (f *savedAudiobooksFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "authors")
}

func (f *savedAudiobooksFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		book, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s by %s", i+1, str(book, "name"), nameList(array(book, "authors")))
	}
}

// audiobookChaptersFormatter renders an audiobook's chapter listing.
type audiobookChaptersFormatter struct{}

func (f *audiobookChaptersFormatter) Name() string { return "audiobook-chapters" }

func (f *audiobookChaptersFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindChapterList}
}

func (f *audiobookChaptersFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "chapter_number")
}

func (f *audiobookChaptersFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for _, entry := range array(obj, "items") {
		chapter, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s (%s)", int(num(chapter, "chapter_number")),
			str(chapter, "name"), formatMS(num(chapter, "duration_ms")))
	}
}

// savedAlbumsFormatter renders saved albums. Registered before the top
// tracks formatter: both inspect items with album-flavored fields.
type savedAlbumsFormatter struct{}

func (f *savedAlbumsFormatter) Name() string { return "saved-albums" }

func (f *savedAlbumsFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindSavedAlbums}
}

func (f *savedAlbumsFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "album") && !has(first, "track")
}

func (f *savedAlbumsFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		album := item
		if wrapped := object(item, "album"); wrapped != nil {
			album = wrapped
		}
		line(w, "%d. %s - %s (%s)", i+1, str(album, "name"),
			artistNames(array(album, "artists")), str(album, "release_date"))
	}
}

// topTracksFormatter renders the user's top tracks; items are bare track
// objects.
type topTracksFormatter struct{}

func (f *topTracksFormatter) Name() string { return "top-tracks" }

func (f *topTracksFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindTopTracks}
}

func (f *topTracksFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "album") && has(first, "artists")
}

func (f *topTracksFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		track, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s - %s", i+1, str(track, "name"), artistNames(array(track, "artists")))
	}
}

// topArtistsFormatter renders the user's top artists and other bare
// artist listings.
type topArtistsFormatter struct{}

func (f *topArtistsFormatter) Name() string { return "top-artists" }

func (f *topArtistsFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindTopArtists, KindArtistList, KindFollowedArtists, KindRelatedArtists}
}

func (f *topArtistsFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "genres") && has(first, "followers")
}

func (f *topArtistsFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	entries := array(obj, "items")
	if entries == nil {
		// followed artists nest under artists.items; related artists are
		// a bare artists array
		if nested := object(obj, "artists"); nested != nil {
			entries = array(nested, "items")
		}
		if entries == nil {
			entries = array(obj, "artists")
		}
	}
	for i, entry := range entries {
		artist, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s %s", i+1, str(artist, "name"), dimStyle.Render(artistGenres(array(artist, "genres"))))
	}
}

// artistTopTracksFormatter renders an artist's top tracks: a bare tracks
// array without pagination.
type artistTopTracksFormatter struct{}

func (f *artistTopTracksFormatter) Name() string { return "artist-top-tracks" }

func (f *artistTopTracksFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindArtistTopTracks}
}

func (f *artistTopTracksFormatter) Matches(payload map[string]any) bool {
	_, isArray := payload["tracks"].([]any)
	return isArray && !has(payload, "items")
}

func (f *artistTopTracksFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "tracks") {
		track, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "%d. %s - %s", i+1, str(track, "name"), artistNames(array(track, "artists")))
	}
}

// libraryCheckFormatter renders contains-check results: a bare array of
// booleans.
type libraryCheckFormatter struct{}

func (f *libraryCheckFormatter) Name() string { return "library-check" }

func (f *libraryCheckFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindLibraryCheck}
}

func (f *libraryCheckFormatter) Matches(payload map[string]any) bool {
	return false
}

func (f *libraryCheckFormatter) MatchesArray(payload []any) bool {
	if len(payload) == 0 {
		return false
	}
	for _, v := range payload {
		if _, ok := v.(bool); !ok {
			return false
		}
	}
	return true
}

func (f *libraryCheckFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	arr, _ := asArray(payload)
	for i, v := range arr {
		saved := "no"
		if b, _ := v.(bool); b {
			saved = "yes"
		}
		line(w, "%d. %s", i+1, saved)
	}
}

// marketsFormatter renders the available markets list.
type marketsFormatter struct{}

func (f *marketsFormatter) Name() string { return "markets" }

func (f *marketsFormatter) Kinds() []PayloadKind {
	return []PayloadKind{KindMarkets}
}

func (f *marketsFormatter) Matches(payload map[string]any) bool {
	return has(payload, "markets")
}

func (f *marketsFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	codes := ""
	for i, entry := range array(obj, "markets") {
		if code, ok := entry.(string); ok {
			if i > 0 {
				codes += " "
			}
			codes += code
		}
	}
	line(w, "%s", codes)
}
