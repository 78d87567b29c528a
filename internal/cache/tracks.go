package cache

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// TrackCache is the durable mirror of the music library. It is owned by a
// single consumer goroutine; background sync reaches it only through messages,
// so none of the methods take locks.
type TrackCache struct {
	TotalTracks  int            `json:"total_tracks"`
	LoadedTracks int            `json:"loaded_tracks"`
	LastUpdated  *int64         `json:"last_updated"` // Unix timestamp of last successful reconciliation
	Tracks       []domain.Track `json:"tracks"`

	// FreshBuild is true when no prior cache file existed, used by the UI for
	// first-run messaging. Never persisted.
	FreshBuild bool `json:"-"`

	path      string
	keysReady bool
}

// AlbumRef identifies an album by name and the artist it was first seen with.
type AlbumRef struct {
	Album  string
	Artist string
}

// LoadTrackCache reads the track cache from dir. It never fails outward:
// a missing or unreadable file yields a fresh empty cache, a corrupt file
// falls back to the same empty default without the fresh flag.
func LoadTrackCache(dir string) *TrackCache {
	c := &TrackCache{}
	if dir != "" {
		c.path = filepath.Join(dir, trackCacheFile)
	}
	existed, err := readSnapshot(c.path, c)
	if !existed {
		c.FreshBuild = true
		return c
	}
	if err != nil {
		// Corrupt JSON is treated the same as absent, minus the fresh flag.
		*c = TrackCache{path: c.path}
	}
	return c
}

// Save rewrites the whole aggregate to disk. Callers throttle save frequency;
// this always writes the complete current snapshot.
func (c *TrackCache) Save() error {
	return writeSnapshot(c.path, c)
}

// IsComplete reports whether every source-reported track has been loaded.
// A cache that has never seen a positive total is never complete.
func (c *TrackCache) IsComplete() bool {
	return c.TotalTracks > 0 && c.LoadedTracks >= c.TotalTracks
}

// UpdateTimestamp stamps LastUpdated with the current time.
func (c *TrackCache) UpdateTimestamp() {
	now := time.Now().Unix()
	c.LastUpdated = &now
}

// FormatLastUpdated renders the reconciliation timestamp for the status bar,
// or "" when the cache has never completed a sync.
func (c *TrackCache) FormatLastUpdated() string {
	if c.LastUpdated == nil {
		return ""
	}
	t := time.Unix(*c.LastUpdated, 0).Local()
	return fmt.Sprintf("Last updated: %s", t.Format("2006/01/02 15:04"))
}

// AddTracks appends a batch unconditionally. Only the initial full build uses
// this; incremental passes go through UpsertTracks.
func (c *TrackCache) AddTracks(batch []domain.Track) {
	c.Tracks = append(c.Tracks, batch...)
	c.LoadedTracks = len(c.Tracks)
}

// UpsertTracks merges a batch by the (name, artist, album) key: existing
// records get their mutable fields overwritten in place, unknown records are
// appended. Returns the count of genuinely new tracks. The per-record scan is
// linear, which is fine for the small batches an incremental pass produces.
func (c *TrackCache) UpsertTracks(batch []domain.Track) int {
	added := 0
	for _, nt := range batch {
		idx := -1
		for i := range c.Tracks {
			if c.Tracks[i].SameIdentity(nt) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			existing := &c.Tracks[idx]
			existing.DateAdded = nt.DateAdded
			existing.Year = nt.Year
			existing.TrackNum = nt.TrackNum
			existing.DiscNum = nt.DiscNum
			existing.Time = nt.Time
			existing.PlayCount = nt.PlayCount
			existing.Favorited = nt.Favorited
			existing.InitSearchKey()
		} else {
			c.Tracks = append(c.Tracks, nt)
			added++
		}
	}
	c.LoadedTracks = len(c.Tracks)
	return added
}

// TracksByAlbum returns the tracks of one album (exact name match) in
// canonical album order: disc number, then track number.
func (c *TrackCache) TracksByAlbum(album string) []domain.Track {
	var tracks []domain.Track
	for _, t := range c.Tracks {
		if t.Album == album {
			tracks = append(tracks, t)
		}
	}
	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].DiscNum != tracks[j].DiscNum {
			return tracks[i].DiscNum < tracks[j].DiscNum
		}
		return tracks[i].TrackNum < tracks[j].TrackNum
	})
	return tracks
}

// RecentAlbums returns up to limit distinct albums, most recently added first.
// The artist is taken from the newest track of each album. Albums with empty
// names are skipped. Tracks whose date cannot be parsed sort as the empty
// string, i.e. oldest; see dateSortKey.
func (c *TrackCache) RecentAlbums(limit int) []AlbumRef {
	sorted := make([]domain.Track, len(c.Tracks))
	copy(sorted, c.Tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateSortKey(sorted[i].DateAdded) > dateSortKey(sorted[j].DateAdded)
	})

	seen := make(map[string]bool)
	var albums []AlbumRef
	for _, t := range sorted {
		if t.Album == "" || seen[t.Album] {
			continue
		}
		seen[t.Album] = true
		albums = append(albums, AlbumRef{Album: t.Album, Artist: t.Artist})
		if len(albums) >= limit {
			break
		}
	}
	return albums
}

// ensureSearchKeys lazily rebuilds the search keys after a load; they are
// never persisted.
func (c *TrackCache) ensureSearchKeys() {
	if c.keysReady {
		return
	}
	for i := range c.Tracks {
		c.Tracks[i].InitSearchKey()
	}
	c.keysReady = true
}
