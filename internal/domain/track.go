package domain

import "strings"

// Track is one row of the music library. The (Name, Artist, Album) triple is
// the logical primary key: merges match on it and never duplicate it.
type Track struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	DateAdded string `json:"date_added"` // opaque source-formatted date string
	Year      int    `json:"year"`
	TrackNum  int    `json:"track_number"`
	DiscNum   int    `json:"disc_number"`
	Time      string `json:"time"` // display duration, e.g. "3:08"
	PlayCount int    `json:"played_count"`
	Favorited bool   `json:"favorited"`

	// SearchKey is the lower-cased "name artist album" concatenation used for
	// case-insensitive matching. Never persisted; rebuilt after load.
	SearchKey string `json:"-"`
}

// NewTrack builds a track with its search key precomputed.
func NewTrack(name, artist, album, dateAdded string, year, trackNum, discNum int, time string, playCount int, favorited bool) Track {
	t := Track{
		Name:      name,
		Artist:    artist,
		Album:     album,
		DateAdded: dateAdded,
		Year:      year,
		TrackNum:  trackNum,
		DiscNum:   discNum,
		Time:      time,
		PlayCount: playCount,
		Favorited: favorited,
	}
	t.InitSearchKey()
	return t
}

// InitSearchKey recomputes the lower-cased search key from the current fields.
func (t *Track) InitSearchKey() {
	t.SearchKey = strings.ToLower(t.Name + " " + t.Artist + " " + t.Album)
}

// SameIdentity reports whether two tracks share the (name, artist, album) key.
func (t *Track) SameIdentity(other Track) bool {
	return t.Name == other.Name && t.Artist == other.Artist && t.Album == other.Album
}
