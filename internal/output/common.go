package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for human output.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Payload field accessors. Payloads are free-form decoded JSON, so every
// access is defensive.

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// num reads a numeric field. Payloads decoded from JSON carry float64;
// payloads built in-process carry int.
func num(m map[string]any, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func array(m map[string]any, key string) []any {
	a, _ := m[key].([]any)
	return a
}

// items returns m[key].items when m[key] is a paging container.
func items(m map[string]any, key string) []any {
	return array(object(m, key), "items")
}

// hasItems reports whether m[key] is a container with a non-nil items
// array.
func hasItems(m map[string]any, key string) bool {
	container, ok := asObject(m[key])
	if !ok {
		return false
	}
	_, ok = container["items"].([]any)
	return ok
}

// artistNames joins the names of an artists array.
func artistNames(artists []any) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if obj, ok := asObject(a); ok {
			names = append(names, str(obj, "name"))
		}
	}
	return strings.Join(names, ", ")
}

// formatMS renders milliseconds as m:ss.
func formatMS(ms float64) string {
	total := int(ms) / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// line writes one formatted line.
func line(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// heading writes a styled section heading.
func heading(w io.Writer, text string) {
	fmt.Fprintln(w, headingStyle.Render(text))
}

// scoreSuffix renders a fuzzy score annotation when present.
func scoreSuffix(item map[string]any) string {
	if !has(item, "fuzzy_score") {
		return ""
	}
	return " " + scoreStyle.Render(fmt.Sprintf("[%d]", int(num(item, "fuzzy_score"))))
}
