package api

import "testing"

func TestPathBuilders(t *testing.T) {
	tc := []struct {
		name string
		got  string
		want string
	}{
		{"volume", VolumePath(75), "/me/player/volume?volume_percent=75"},
		{"shuffle on", ShufflePath(true), "/me/player/shuffle?state=true"},
		{"repeat", RepeatPath("context"), "/me/player/repeat?state=context"},
		{"queue add", AddToQueuePath("spotify:track:abc"), "/me/player/queue?uri=spotify%3Atrack%3Aabc"},
		{"playlist tracks", PlaylistTracksPath("p1", 50, 100), "/playlists/p1/tracks?limit=50&offset=100"},
		{"saved contains", SavedContainsPath("tracks", []string{"a", "b"}), "/me/tracks/contains?ids=a%2Cb"},
		{"top items", TopItemsPath("artists", "long_term", 10, 0), "/me/top/artists?limit=10&offset=0&time_range=long_term"},
		{"artist top tracks", ArtistTopTracksPath("a1", "US"), "/artists/a1/top-tracks?market=US"},
		{"followed artists", FollowedArtistsPath(20), "/me/following?limit=20&type=artist"},
		{"category", CategoryPath("toplists"), "/browse/categories/toplists"},
		{"markets", MarketsPath(), "/markets"},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("got %q, want %q", c.got, c.want)
			}
		})
	}
}

func TestSearchPath(t *testing.T) {
	got := SearchPath("daft punk", []string{"track", "album"}, 20, 0)
	want := "/search?limit=20&q=daft+punk&type=track%2Calbum"
	if got != want {
		t.Errorf("SearchPath = %q, want %q", got, want)
	}
}

func TestClampLimit(t *testing.T) {
	tc := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{30, 30},
		{75, MaxLimit},
	}
	for _, c := range tc {
		if got := ClampLimit(c.in); got != c.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
