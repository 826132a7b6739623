package output

// PayloadKind tags a success payload so the formatter registry can
// dispatch without inspecting its shape. Values serialize in snake_case.
type PayloadKind string

const (
	KindAlbum             PayloadKind = "album"
	KindArtist            PayloadKind = "artist"
	KindArtistList        PayloadKind = "artist_list"
	KindArtistTopTracks   PayloadKind = "artist_top_tracks"
	KindAudiobook         PayloadKind = "audiobook"
	KindAudiobookList     PayloadKind = "audiobook_list"
	KindCategory          PayloadKind = "category"
	KindCategoryList      PayloadKind = "category_list"
	KindChapter           PayloadKind = "chapter"
	KindChapterList       PayloadKind = "chapter_list"
	KindCombinedSearch    PayloadKind = "combined_search"
	KindDevices           PayloadKind = "devices"
	KindEpisode           PayloadKind = "episode"
	KindEpisodeList       PayloadKind = "episode_list"
	KindFeaturedPlaylists PayloadKind = "featured_playlists"
	KindFollowedArtists   PayloadKind = "followed_artists"
	KindGeneric           PayloadKind = "generic"
	KindLibraryCheck      PayloadKind = "library_check"
	KindMarkets           PayloadKind = "markets"
	KindPins              PayloadKind = "pins"
	KindPlayHistory       PayloadKind = "play_history"
	KindPlayerStatus      PayloadKind = "player_status"
	KindPlaylist          PayloadKind = "playlist"
	KindPlaylistList      PayloadKind = "playlist_list"
	KindQueue             PayloadKind = "queue"
	KindRelatedArtists    PayloadKind = "related_artists"
	KindSavedAlbums       PayloadKind = "saved_albums"
	KindSavedAudiobooks   PayloadKind = "saved_audiobooks"
	KindSavedEpisodes     PayloadKind = "saved_episodes"
	KindSavedShows        PayloadKind = "saved_shows"
	KindSavedTracks       PayloadKind = "saved_tracks"
	KindSearchResults     PayloadKind = "search_results"
	KindShow              PayloadKind = "show"
	KindShowList          PayloadKind = "show_list"
	KindTopArtists        PayloadKind = "top_artists"
	KindTopTracks         PayloadKind = "top_tracks"
	KindTrack             PayloadKind = "track"
	KindTrackList         PayloadKind = "track_list"
	KindUser              PayloadKind = "user"
)
