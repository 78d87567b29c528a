package cache

import (
	"path/filepath"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// PlaylistCache is the keyed side-cache of per-playlist track lists. There is
// no completeness concept: each playlist is independently present or absent.
type PlaylistCache struct {
	Playlists map[string]domain.Playlist `json:"playlists"`

	path string
}

// LoadPlaylistCache reads the playlist cache from dir, falling back to an
// empty cache on any read or decode error.
func LoadPlaylistCache(dir string) *PlaylistCache {
	c := &PlaylistCache{}
	if dir != "" {
		c.path = filepath.Join(dir, playlistCacheFile)
	}
	if existed, err := readSnapshot(c.path, c); existed && err != nil {
		*c = PlaylistCache{path: c.path}
	}
	if c.Playlists == nil {
		c.Playlists = make(map[string]domain.Playlist)
	}
	return c
}

// Save rewrites the whole side-cache to disk.
func (c *PlaylistCache) Save() error {
	return writeSnapshot(c.path, c)
}

// Get returns the cached playlist by name.
func (c *PlaylistCache) Get(name string) (domain.Playlist, bool) {
	p, ok := c.Playlists[name]
	return p, ok
}

// Insert stores or overwrites a playlist keyed by its name.
func (c *PlaylistCache) Insert(p domain.Playlist) {
	c.Playlists[p.Name] = p
}

// Remove drops a playlist from the cache.
func (c *PlaylistCache) Remove(name string) {
	delete(c.Playlists, name)
}

// Has reports whether a playlist is cached.
func (c *PlaylistCache) Has(name string) bool {
	_, ok := c.Playlists[name]
	return ok
}
