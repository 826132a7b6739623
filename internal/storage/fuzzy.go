package storage

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

// Tag match weights for the pin variant. These are fixed; the text
// weights come from config.
const (
	tagExactWeight     = 15
	tagSubstringWeight = 8
)

// Scorer ranks candidate text against a query using the configured fuzzy
// weights. All comparisons are case-insensitive.
//
// There are two variants: [Scorer.Score] for general text and
// [Scorer.ScorePin] which also weighs a pin's tags. They share structure
// but are deliberately separate.
type Scorer struct {
	weights shared.FuzzyConfig
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights shared.FuzzyConfig) *Scorer {
	return &Scorer{weights: weights}
}

// Score rates how well text matches query. An exact match returns the
// exact-match weight outright; otherwise prefix, substring, per-word, and
// Levenshtein-similarity bonuses accumulate. Zero means no match.
func (s *Scorer) Score(query, text string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	text = strings.ToLower(strings.TrimSpace(text))
	if query == "" || text == "" {
		return 0
	}
	if text == query {
		return s.weights.ExactMatch
	}

	score := s.textScore(query, text)
	return score
}

// ScorePin rates a pin against a query: the alias score plus, per query
// word, an exact-tag and substring-tag bonus.
func (s *Scorer) ScorePin(query string, pin Pin) int {
	q := strings.ToLower(strings.TrimSpace(query))
	alias := strings.ToLower(strings.TrimSpace(pin.Name))
	if q == "" || alias == "" {
		return 0
	}
	if alias == q {
		return s.weights.ExactMatch
	}

	score := s.textScore(q, alias)
	for _, word := range strings.Fields(q) {
		for _, tag := range pin.Tags {
			t := strings.ToLower(tag)
			switch {
			case t == word:
				score += tagExactWeight
			case strings.Contains(t, word):
				score += tagSubstringWeight
			}
		}
	}
	return score
}

// textScore accumulates the non-exact bonuses. Inputs are lowercased.
func (s *Scorer) textScore(query, text string) int {
	score := 0
	if strings.HasPrefix(text, query) {
		score += s.weights.StartsWith
	}
	if strings.Contains(text, query) {
		score += s.weights.Contains
	}
	for _, word := range strings.Fields(query) {
		if strings.Contains(text, word) {
			score += s.weights.WordMatch
		}
	}
	if sim := similarity(query, text); sim > s.weights.LevenshteinThreshold {
		score += int(sim * s.weights.LevenshteinScale)
	}
	return score
}

// similarity is 1 - distance/maxlen, in [0, 1].
func similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
