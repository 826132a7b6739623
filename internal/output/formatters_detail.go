package output

import "io"

// playlistFormatter renders playlist detail. The matcher requires an
// owner so search-result payloads with a tracks container stay out.
type playlistFormatter struct{}

func (f *playlistFormatter) Name() string { return "playlist" }
func (f *playlistFormatter) Kinds() []PayloadKind { return []PayloadKind{KindPlaylist} }

func (f *playlistFormatter) Matches(payload map[string]any) bool {
	return has(payload, "owner") && has(payload, "tracks")
}

func (f *playlistFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	if owner := object(obj, "owner"); owner != nil {
		line(w, "  by %s", str(owner, "display_name"))
	}
	if desc := str(obj, "description"); desc != "" {
		line(w, "  %s", dimStyle.Render(desc))
	}
	tracks := object(obj, "tracks")
	line(w, "  %d tracks | public: %v", int(num(tracks, "total")), boolean(obj, "public"))
	for i, entry := range array(tracks, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		track := object(item, "track")
		line(w, "  %d. %s - %s", i+1, str(track, "name"), artistNames(array(track, "artists")))
	}
}

// trackFormatter renders track detail.
type trackFormatter struct{}

func (f *trackFormatter) Name() string { return "track" }
func (f *trackFormatter) Kinds() []PayloadKind { return []PayloadKind{KindTrack} }

func (f *trackFormatter) Matches(payload map[string]any) bool {
	return has(payload, "album") && has(payload, "artists") && has(payload, "duration_ms")
}

func (f *trackFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	line(w, "  by %s", artistNames(array(obj, "artists")))
	if album := object(obj, "album"); album != nil {
		line(w, "  from %s (%s)", str(album, "name"), str(album, "release_date"))
	}
	line(w, "  %s | popularity %d", formatMS(num(obj, "duration_ms")), int(num(obj, "popularity")))
	line(w, "  %s", dimStyle.Render(str(obj, "uri")))
}

// albumFormatter renders album detail.
type albumFormatter struct{}

func (f *albumFormatter) Name() string { return "album" }
func (f *albumFormatter) Kinds() []PayloadKind { return []PayloadKind{KindAlbum} }

func (f *albumFormatter) Matches(payload map[string]any) bool {
	return has(payload, "album_type") && has(payload, "tracks")
}

func (f *albumFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	line(w, "  by %s | %s | %s", artistNames(array(obj, "artists")), str(obj, "album_type"), str(obj, "release_date"))
	for i, entry := range items(obj, "tracks") {
		track, ok := asObject(entry)
		if !ok {
			continue
		}
		line(w, "  %d. %s (%s)", i+1, str(track, "name"), formatMS(num(track, "duration_ms")))
	}
}

// artistFormatter renders artist detail. Lacks-album keeps it off track
// payloads, which also carry artists.
type artistFormatter struct{}

func (f *artistFormatter) Name() string { return "artist" }
func (f *artistFormatter) Kinds() []PayloadKind { return []PayloadKind{KindArtist} }

func (f *artistFormatter) Matches(payload map[string]any) bool {
	return has(payload, "followers") && has(payload, "genres") && !has(payload, "album")
}

func (f *artistFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	if genres := array(obj, "genres"); len(genres) > 0 {
		line(w, "  %s", artistGenres(genres))
	}
	line(w, "  %d followers | popularity %d",
		int(num(object(obj, "followers"), "total")), int(num(obj, "popularity")))
	line(w, "  %s", dimStyle.Render(str(obj, "uri")))
}

func artistGenres(genres []any) string {
	out := ""
	for i, g := range genres {
		if s, ok := g.(string); ok {
			if i > 0 {
				out += ", "
			}
			out += s
		}
	}
	return out
}

// userFormatter renders a user profile.
type userFormatter struct{}

func (f *userFormatter) Name() string { return "user" }
func (f *userFormatter) Kinds() []PayloadKind { return []PayloadKind{KindUser} }

func (f *userFormatter) Matches(payload map[string]any) bool {
	return has(payload, "display_name") && has(payload, "product") && !has(payload, "genres")
}

func (f *userFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "display_name"))
	line(w, "  id: %s | plan: %s | country: %s", str(obj, "id"), str(obj, "product"), str(obj, "country"))
	if followers := object(obj, "followers"); followers != nil {
		line(w, "  %d followers", int(num(followers, "total")))
	}
}

// showFormatter renders show detail.
type showFormatter struct{}

func (f *showFormatter) Name() string { return "show" }
func (f *showFormatter) Kinds() []PayloadKind { return []PayloadKind{KindShow} }

func (f *showFormatter) Matches(payload map[string]any) bool {
	return has(payload, "publisher") && has(payload, "total_episodes")
}

func (f *showFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	line(w, "  by %s | %d episodes", str(obj, "publisher"), int(num(obj, "total_episodes")))
	if desc := str(obj, "description"); desc != "" {
		line(w, "  %s", dimStyle.Render(desc))
	}
}

// episodeFormatter renders episode detail.
type episodeFormatter struct{}

func (f *episodeFormatter) Name() string { return "episode" }
func (f *episodeFormatter) Kinds() []PayloadKind { return []PayloadKind{KindEpisode} }

func (f *episodeFormatter) Matches(payload map[string]any) bool {
	return has(payload, "release_date") && has(payload, "duration_ms") && has(payload, "show")
}

func (f *episodeFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	if show := object(obj, "show"); show != nil {
		line(w, "  from %s", str(show, "name"))
	}
	line(w, "  %s | %s", str(obj, "release_date"), formatMS(num(obj, "duration_ms")))
}

// audiobookFormatter renders audiobook detail.
type audiobookFormatter struct{}

func (f *audiobookFormatter) Name() string { return "audiobook" }
func (f *audiobookFormatter) Kinds() []PayloadKind { return []PayloadKind{KindAudiobook} }

func (f *audiobookFormatter) Matches(payload map[string]any) bool {
	return has(payload, "authors") && has(payload, "narrators")
}

func (f *audiobookFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	line(w, "  by %s | narrated by %s", nameList(array(obj, "authors")), nameList(array(obj, "narrators")))
	line(w, "  %d chapters | %s", int(num(obj, "total_chapters")), str(obj, "publisher"))
}

func nameList(entries []any) string {
	out := ""
	for i, e := range entries {
		if obj, ok := asObject(e); ok {
			if i > 0 {
				out += ", "
			}
			out += str(obj, "name")
		}
	}
	return out
}

// chapterFormatter renders audiobook chapter detail.
type chapterFormatter struct{}

func (f *chapterFormatter) Name() string { return "chapter" }
func (f *chapterFormatter) Kinds() []PayloadKind { return []PayloadKind{KindChapter} }

func (f *chapterFormatter) Matches(payload map[string]any) bool {
	return has(payload, "chapter_number") && has(payload, "audiobook")
}

func (f *chapterFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	if book := object(obj, "audiobook"); book != nil {
		line(w, "  from %s", str(book, "name"))
	}
	line(w, "  chapter %d | %s", int(num(obj, "chapter_number")), formatMS(num(obj, "duration_ms")))
}

// categoryFormatter renders one browse category.
type categoryFormatter struct{}

func (f *categoryFormatter) Name() string { return "category" }
func (f *categoryFormatter) Kinds() []PayloadKind { return []PayloadKind{KindCategory} }

func (f *categoryFormatter) Matches(payload map[string]any) bool {
	return has(payload, "icons") && !has(payload, "categories")
}

func (f *categoryFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, str(obj, "name"))
	line(w, "  id: %s", str(obj, "id"))
}

// categoryListFormatter renders the browse category listing.
type categoryListFormatter struct{}

func (f *categoryListFormatter) Name() string { return "category-list" }
func (f *categoryListFormatter) Kinds() []PayloadKind { return []PayloadKind{KindCategoryList} }

func (f *categoryListFormatter) Matches(payload map[string]any) bool {
	return has(payload, "categories")
}

func (f *categoryListFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	heading(w, message)
	for i, entry := range items(obj, "categories") {
		if category, ok := asObject(entry); ok {
			line(w, "%d. %s %s", i+1, str(category, "name"), dimStyle.Render(str(category, "id")))
		}
	}
}
