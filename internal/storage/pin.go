package storage

import (
	"fmt"
	"strings"
	"time"
)

// ResourceKind identifies what a pin points at.
type ResourceKind string

const (
	KindTrack     ResourceKind = "track"
	KindAlbum     ResourceKind = "album"
	KindArtist    ResourceKind = "artist"
	KindPlaylist  ResourceKind = "playlist"
	KindShow      ResourceKind = "show"
	KindEpisode   ResourceKind = "episode"
	KindAudiobook ResourceKind = "audiobook"
)

var resourceKinds = []ResourceKind{
	KindTrack, KindAlbum, KindArtist, KindPlaylist, KindShow, KindEpisode, KindAudiobook,
}

// ParseResourceKind parses a lowercase kind name.
func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(strings.ToLower(s))
	for _, valid := range resourceKinds {
		if k == valid {
			return k, nil
		}
	}
	names := make([]string, len(resourceKinds))
	for i, valid := range resourceKinds {
		names[i] = string(valid)
	}
	return "", fmt.Errorf("invalid resource type %q (valid: %s)", s, strings.Join(names, ", "))
}

// Pin is a locally saved alias for a Spotify resource.
type Pin struct {
	ID      string       `json:"id"`
	URI     string       `json:"uri,omitempty"`
	Name    string       `json:"name"`
	Kind    ResourceKind `json:"kind"`
	Tags    []string     `json:"tags"`
	AddedAt time.Time    `json:"added_at"`
}

// NewPin creates a pin from user input, normalizing URLs and URIs to a
// bare id.
func NewPin(alias, idOrURL string, kind ResourceKind, tags []string) Pin {
	id := ExtractID(idOrURL)
	if tags == nil {
		tags = []string{}
	}
	return Pin{
		ID:      id,
		Name:    alias,
		Kind:    kind,
		Tags:    tags,
		AddedAt: time.Now().UTC(),
	}
}

// SpotifyURI returns the pin's URI, deriving spotify:{kind}:{id} when none
// was stored.
func (p Pin) SpotifyURI() string {
	if p.URI != "" {
		return p.URI
	}
	return fmt.Sprintf("spotify:%s:%s", p.Kind, p.ID)
}

// ExtractID normalizes a share URL, URI, or bare id to the id alone.
//
// open.spotify.com URLs yield the last path segment with any query string
// stripped; colon-separated URIs yield the text after the last colon;
// anything else passes through unchanged.
func ExtractID(input string) string {
	if strings.Contains(input, "open.spotify.com") {
		segment := input
		if i := strings.LastIndex(segment, "/"); i >= 0 {
			segment = segment[i+1:]
		}
		if i := strings.Index(segment, "?"); i >= 0 {
			segment = segment[:i]
		}
		return segment
	}
	if i := strings.LastIndex(input, ":"); i >= 0 {
		return input[i+1:]
	}
	return input
}
