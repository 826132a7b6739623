package commands

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/api"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

// SearchFilters holds the structured field qualifiers a search can carry.
type SearchFilters struct {
	Artist     string
	Album      string
	Track      string
	Year       string
	Genre      string
	ISRC       string
	UPC        string
	TagNew     bool
	TagHipster bool
}

// Empty reports whether no qualifier is set.
func (f SearchFilters) Empty() bool {
	return f.Artist == "" && f.Album == "" && f.Track == "" && f.Year == "" &&
		f.Genre == "" && f.ISRC == "" && f.UPC == "" && !f.TagNew && !f.TagHipster
}

// BuildQuery appends field:value qualifiers to the free query.
func (f SearchFilters) BuildQuery(base string) string {
	parts := []string{}
	if base != "" {
		parts = append(parts, base)
	}
	for _, q := range []struct{ field, value string }{
		{"artist", f.Artist},
		{"album", f.Album},
		{"track", f.Track},
		{"year", f.Year},
		{"genre", f.Genre},
		{"isrc", f.ISRC},
		{"upc", f.UPC},
	} {
		if q.value != "" {
			parts = append(parts, q.field+":"+q.value)
		}
	}
	if f.TagNew {
		parts = append(parts, "tag:new")
	}
	if f.TagHipster {
		parts = append(parts, "tag:hipster")
	}
	return strings.Join(parts, " ")
}

// SearchOptions collects the knobs of a search invocation.
type SearchOptions struct {
	Query    string
	Types    []string
	Limit    int
	PinsOnly bool
	Exact    bool
	Play     bool
	Filters  SearchFilters
}

var allSearchTypes = []string{"track", "album", "artist", "playlist", "show", "episode", "audiobook"}

// container names in the response, in scan order.
var searchResultContainers = []string{"tracks", "albums", "artists", "playlists", "shows", "episodes", "audiobooks"}

// Search runs the combined pin + remote search pipeline.
func (h *Handler) Search(ctx context.Context, opts SearchOptions) *output.Response {
	query := strings.TrimSpace(opts.Query)
	if query == "" && opts.Filters.Empty() {
		return output.Err(http.StatusBadRequest,
			"Search query is empty. Provide a query or use filters (--artist, --album, etc.)",
			output.ErrKindValidation)
	}

	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	pins := h.searchPins(store, query)

	if opts.PinsOnly {
		payload := map[string]any{"pins": pins, "spotify": nil}
		return output.SuccessTyped(http.StatusOK, "Search results", output.KindCombinedSearch, payload)
	}

	types := opts.Types
	if len(types) == 0 {
		types = allSearchTypes
	}
	limit := api.ClampLimit(opts.Limit)
	requestLimit := limit
	if limit == 1 {
		// The remote ranks differently at limit=1; ask for two and trim.
		requestLimit = 2
	}

	return h.withClient(ctx, func(c *api.Client) *output.Response {
		raw, err := c.Get(ctx, api.SearchPath(opts.Filters.BuildQuery(query), types, requestLimit, 0))
		if err != nil {
			return apiFail(err, "Search")
		}
		remote, _ := raw.(map[string]any)
		if remote == nil {
			remote = map[string]any{}
		}
		if limit == 1 {
			truncateContainers(remote, 1)
		}
		dropGhostEntries(remote)
		if opts.Exact {
			filterExact(remote, query)
		}
		h.annotateScores(remote, query)

		if opts.Play {
			if uri := firstPlayableURI(remote, pins); uri != "" {
				if resp := h.PlayerPlay(ctx, uri, ""); resp.IsError() {
					return resp
				}
			}
		}

		payload := map[string]any{"pins": pins, "spotify": remote}
		return output.SuccessTyped(http.StatusOK, "Search results", output.KindCombinedSearch, payload)
	})
}

// searchPins fuzzy-matches the free query against the pin store and
// returns entries sorted by descending score.
func (h *Handler) searchPins(store *storage.PinStore, query string) []map[string]any {
	scored := store.FuzzySearch(query, h.Scorer())
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	entries := make([]map[string]any, 0, len(scored))
	for _, sp := range scored {
		entries = append(entries, map[string]any{
			"id":          sp.Pin.ID,
			"uri":         sp.Pin.SpotifyURI(),
			"name":        sp.Pin.Name,
			"kind":        string(sp.Pin.Kind),
			"tags":        sp.Pin.Tags,
			"added_at":    sp.Pin.AddedAt,
			"fuzzy_score": sp.Score,
		})
	}
	return entries
}

// truncateContainers caps every result container at n items and records
// the effective limit.
func truncateContainers(remote map[string]any, n int) {
	for _, key := range searchResultContainers {
		container, ok := remote[key].(map[string]any)
		if !ok {
			continue
		}
		if items, ok := container["items"].([]any); ok && len(items) > n {
			container["items"] = items[:n]
		}
		container["limit"] = n
	}
}

// dropGhostEntries removes items without a string id. The remote
// occasionally returns such entries and they break every downstream use.
func dropGhostEntries(remote map[string]any) {
	for _, key := range searchResultContainers {
		container, ok := remote[key].(map[string]any)
		if !ok {
			continue
		}
		items, ok := container["items"].([]any)
		if !ok {
			continue
		}
		kept := make([]any, 0, len(items))
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := item["id"].(string); ok {
				kept = append(kept, item)
			}
		}
		container["items"] = kept
	}
}

// filterExact keeps only items whose name contains the query,
// case-insensitively.
func filterExact(remote map[string]any, query string) {
	needle := strings.ToLower(query)
	for _, key := range searchResultContainers {
		container, ok := remote[key].(map[string]any)
		if !ok {
			continue
		}
		items, ok := container["items"].([]any)
		if !ok {
			continue
		}
		kept := make([]any, 0, len(items))
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, _ := item["name"].(string)
			if strings.Contains(strings.ToLower(name), needle) {
				kept = append(kept, item)
			}
		}
		container["items"] = kept
	}
}

// annotateScores attaches a fuzzy_score to every item, scoring the best
// of its name, artist names, and owner display name. When configured,
// items are re-ordered by score within each container.
func (h *Handler) annotateScores(remote map[string]any, query string) {
	scorer := h.Scorer()
	for _, key := range searchResultContainers {
		container, ok := remote[key].(map[string]any)
		if !ok {
			continue
		}
		items, ok := container["items"].([]any)
		if !ok {
			continue
		}
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			item["fuzzy_score"] = itemScore(scorer, query, item)
		}
		if h.cfg.Search.SortByScore {
			sort.SliceStable(items, func(i, j int) bool {
				return entryScore(items[i]) > entryScore(items[j])
			})
			container["items"] = items
		}
	}
}

func itemScore(scorer *storage.Scorer, query string, item map[string]any) int {
	best := 0
	if name, ok := item["name"].(string); ok {
		best = scorer.Score(query, name)
	}
	if artists, ok := item["artists"].([]any); ok {
		for _, a := range artists {
			artist, ok := a.(map[string]any)
			if !ok {
				continue
			}
			if name, ok := artist["name"].(string); ok {
				if s := scorer.Score(query, name); s > best {
					best = s
				}
			}
		}
	}
	if owner, ok := item["owner"].(map[string]any); ok {
		if name, ok := owner["display_name"].(string); ok {
			if s := scorer.Score(query, name); s > best {
				best = s
			}
		}
	}
	return best
}

func entryScore(entry any) int {
	item, ok := entry.(map[string]any)
	if !ok {
		return 0
	}
	score, _ := item["fuzzy_score"].(int)
	return score
}

// firstPlayableURI scans the result containers in order, then the pins,
// for something to hand to the player.
func firstPlayableURI(remote map[string]any, pins []map[string]any) string {
	for _, key := range searchResultContainers {
		container, ok := remote[key].(map[string]any)
		if !ok {
			continue
		}
		items, ok := container["items"].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		if item, ok := items[0].(map[string]any); ok {
			if uri, ok := item["uri"].(string); ok && uri != "" {
				return uri
			}
		}
	}
	if len(pins) > 0 {
		if uri, ok := pins[0]["uri"].(string); ok {
			return uri
		}
	}
	return ""
}

// BestMatch scores candidates by name and returns the index of the best
// one, preferring earlier entries on ties. ownerBonus is added before
// comparison when the candidate's owner matches the given display name.
func BestMatch(scorer *storage.Scorer, query string, candidates []map[string]any, ownerName string) int {
	bestIdx := -1
	bestScore := -1.0
	for i, cand := range candidates {
		name, _ := cand["name"].(string)
		score := float64(scorer.Score(query, name))
		if ownerName != "" {
			if owner, ok := cand["owner"].(map[string]any); ok {
				if display, _ := owner["display_name"].(string); strings.EqualFold(display, ownerName) {
					score += 1.0
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx
}
