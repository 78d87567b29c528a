package domain

// PlaylistTrack is the lightweight track summary stored per playlist entry.
// Playlists are linear, so there is no disc or track number.
type PlaylistTrack struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Year      int    `json:"year"`
	Time      string `json:"time"`
	PlayCount int    `json:"played_count"`
	Favorited bool   `json:"favorited"`
}

// Playlist is a named, ordered list of track summaries.
type Playlist struct {
	Name   string          `json:"name"`
	Tracks []PlaylistTrack `json:"tracks"`
}

// PlaylistInfo is a catalog entry returned by the library source.
type PlaylistInfo struct {
	Name       string
	TrackCount int
}
