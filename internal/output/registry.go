package output

import (
	"io"
)

// Formatter renders one family of success payloads.
//
// Kinds is the typed fast path; Matches is the legacy shape-based
// fallback for payloads produced without a kind tag. The shape matchers
// are ordered and must stay mutually disjoint in the cases they claim.
type Formatter interface {
	Name() string
	Kinds() []PayloadKind
	Matches(payload map[string]any) bool
	Format(w io.Writer, payload any, message string)
}

// Registry dispatches payload rendering across registered formatters.
type Registry struct {
	formatters []Formatter
	byKind     map[PayloadKind]Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: map[PayloadKind]Formatter{}}
}

// Register appends a formatter. Registration order is the shape-matcher
// precedence; the first formatter claiming a kind keeps it.
func (r *Registry) Register(f Formatter) {
	r.formatters = append(r.formatters, f)
	for _, kind := range f.Kinds() {
		if _, taken := r.byKind[kind]; !taken {
			r.byKind[kind] = f
		}
	}
}

// Format renders a payload: typed dispatch when a kind is present, then
// the ordered shape scan, then the plain message.
func (r *Registry) Format(w io.Writer, kind PayloadKind, payload any, message string) {
	if kind != "" {
		if f, ok := r.byKind[kind]; ok {
			f.Format(w, payload, message)
			return
		}
	}

	if obj, ok := asObject(payload); ok {
		for _, f := range r.formatters {
			if f.Matches(obj) {
				f.Format(w, payload, message)
				return
			}
		}
	} else if arr, ok := asArray(payload); ok {
		for _, f := range r.formatters {
			if af, ok := f.(arrayMatcher); ok && af.MatchesArray(arr) {
				f.Format(w, payload, message)
				return
			}
		}
	}

	line(w, "%s", message)
}

// arrayMatcher is implemented by formatters whose legacy payloads are
// bare JSON arrays rather than objects (library check).
type arrayMatcher interface {
	MatchesArray(payload []any) bool
}

// DefaultRegistry builds the registry with the canonical ordering. The
// resource-detail formatters register before the search-results formatter
// so they claim their shapes first.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		&playerStatusFormatter{},
		&queueFormatter{},
		&devicesFormatter{},
		&combinedSearchFormatter{},
		&pinsFormatter{},
		&categoryListFormatter{},
		&categoryFormatter{},
		&playlistFormatter{},
		&trackFormatter{},
		&albumFormatter{},
		&artistFormatter{},
		&searchResultsFormatter{},
		&userFormatter{},
		&showFormatter{},
		&episodeFormatter{},
		&audiobookFormatter{},
		&chapterFormatter{},
		&playlistsFormatter{},
		&savedTracksFormatter{},
		&playHistoryFormatter{},
		&savedShowsFormatter{},
		&showEpisodesFormatter{},
		&savedEpisodesFormatter{},
		&savedAudiobooksFormatter{},
		&audiobookChaptersFormatter{},
		&savedAlbumsFormatter{},
		&topTracksFormatter{},
		&topArtistsFormatter{},
		&artistTopTracksFormatter{},
		&libraryCheckFormatter{},
		&marketsFormatter{},
	} {
		r.Register(f)
	}
	return r
}
