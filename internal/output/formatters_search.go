package output

import "io"

// searchContainers is the fixed scan order for the seven result types.
var searchContainers = []string{"tracks", "albums", "artists", "playlists", "shows", "episodes", "audiobooks"}

// combinedSearchFormatter renders the pins + remote search payload.
type combinedSearchFormatter struct{}

func (f *combinedSearchFormatter) Name() string { return "combined-search" }
func (f *combinedSearchFormatter) Kinds() []PayloadKind { return []PayloadKind{KindCombinedSearch} }

func (f *combinedSearchFormatter) Matches(payload map[string]any) bool {
	return has(payload, "spotify")
}

func (f *combinedSearchFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	if pins := array(obj, "pins"); len(pins) > 0 {
		heading(w, "Pinned")
		formatPinList(w, pins)
	}
	if remote, ok := asObject(obj["spotify"]); ok {
		(&searchResultsFormatter{}).Format(w, remote, message)
	}
}

// pinsFormatter renders a standalone pin listing.
type pinsFormatter struct{}

func (f *pinsFormatter) Name() string { return "pins" }
func (f *pinsFormatter) Kinds() []PayloadKind { return []PayloadKind{KindPins} }

func (f *pinsFormatter) Matches(payload map[string]any) bool {
	return has(payload, "pins") && !has(payload, "spotify")
}

func (f *pinsFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	pins := array(obj, "pins")
	if len(pins) == 0 {
		line(w, "No pins")
		return
	}
	heading(w, message)
	formatPinList(w, pins)
}

func formatPinList(w io.Writer, pins []any) {
	for i, entry := range pins {
		pin, ok := asObject(entry)
		if !ok {
			continue
		}
		tags := ""
		if t := array(pin, "tags"); len(t) > 0 {
			tags = " " + dimStyle.Render("#"+artistGenres(t))
		}
		line(w, "%d. %s (%s) %s%s%s", i+1, str(pin, "name"), str(pin, "kind"),
			dimStyle.Render(str(pin, "id")), tags, scoreSuffix(pin))
	}
}

// searchResultsFormatter renders a remote search payload: any subset of
// the seven result containers.
type searchResultsFormatter struct{}

func (f *searchResultsFormatter) Name() string { return "search-results" }
func (f *searchResultsFormatter) Kinds() []PayloadKind { return []PayloadKind{KindSearchResults} }

// Matches rejects anything carrying owner or album_type (playlist and
// album detail payloads) and then requires at least one result container
// with items.
func (f *searchResultsFormatter) Matches(payload map[string]any) bool {
	if has(payload, "owner") || has(payload, "album_type") {
		return false
	}
	for _, key := range searchContainers {
		if hasItems(payload, key) {
			return true
		}
	}
	return false
}

func (f *searchResultsFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	for _, key := range searchContainers {
		if !hasItems(obj, key) {
			continue
		}
		entries := items(obj, key)
		if len(entries) == 0 {
			continue
		}
		heading(w, titleCase(key))
		for i, entry := range entries {
			item, ok := asObject(entry)
			if !ok {
				continue
			}
			line(w, "%d. %s%s", i+1, searchLine(key, item), scoreSuffix(item))
		}
	}
}

func searchLine(container string, item map[string]any) string {
	name := str(item, "name")
	switch container {
	case "tracks":
		return name + " - " + artistNames(array(item, "artists"))
	case "albums":
		return name + " - " + artistNames(array(item, "artists")) + " (" + str(item, "release_date") + ")"
	case "playlists":
		owner := object(item, "owner")
		return name + " by " + str(owner, "display_name")
	case "shows", "audiobooks":
		return name + " - " + str(item, "publisher")
	default:
		return name
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
