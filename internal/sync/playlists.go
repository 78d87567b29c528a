package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/krzmknt/macos-music-tui/internal/cache"
	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// builtinPlaylists are source-level playlists that mirror the whole library;
// they are filtered out before the catalog reaches the cache.
var builtinPlaylists = map[string]bool{
	"Music":          true,
	"Music Videos":   true,
	"Favorite Songs": true,
}

// PlaylistSyncer fills the playlist side-cache. The bulk pass fetches the
// catalog once and loads only playlists missing from the cache; explicit
// single-playlist refreshes run independently but funnel through the same
// channel, so the cache still has a single writer.
type PlaylistSyncer struct {
	source domain.LibrarySource
	logger *slog.Logger
	ch     chan PlaylistMessage
}

// NewPlaylistSyncer creates a playlist pipeline.
func NewPlaylistSyncer(source domain.LibrarySource, logger *slog.Logger) *PlaylistSyncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistSyncer{
		source: source,
		logger: logger,
		ch:     make(chan PlaylistMessage, 16),
	}
}

// Messages returns the receive side of the pipeline channel.
func (s *PlaylistSyncer) Messages() <-chan PlaylistMessage {
	return s.ch
}

// Run performs the bulk pass. cached holds the playlist names already present
// in the side-cache; they are not re-fetched. A fetch failure ends the pass,
// keeping whatever was already sent. Always ends with PlaylistSyncDone.
func (s *PlaylistSyncer) Run(ctx context.Context, cached map[string]bool) {
	defer func() { s.ch <- PlaylistSyncDone{} }()

	catalog, err := s.source.Playlists(ctx)
	if err != nil {
		s.logger.Warn("playlist sync: catalog fetch failed", "error", err)
		return
	}

	filtered := catalog[:0]
	for _, p := range catalog {
		if !builtinPlaylists[p.Name] {
			filtered = append(filtered, p)
		}
	}
	s.ch <- PlaylistCatalog{Playlists: filtered}

	var uncached []domain.PlaylistInfo
	for _, p := range filtered {
		if !cached[p.Name] {
			uncached = append(uncached, p)
		}
	}
	if len(uncached) == 0 {
		return
	}

	for i, p := range uncached {
		s.ch <- PlaylistProgress{Current: i + 1, Total: len(uncached), Name: p.Name}
		tracks, err := s.source.PlaylistTracks(ctx, p.Name)
		if err != nil {
			s.logger.Warn("playlist sync: track fetch failed", "error", err, "playlist", p.Name)
			return
		}
		s.ch <- PlaylistLoaded{Playlist: domain.Playlist{Name: p.Name, Tracks: tracks}}
	}
}

// ForceRefresh re-fetches one playlist on its own goroutine, bypassing the
// cache check. The result arrives on the same channel as the bulk pass.
func (s *PlaylistSyncer) ForceRefresh(ctx context.Context, name string) {
	go func() {
		tracks, err := s.source.PlaylistTracks(ctx, name)
		if err != nil {
			s.logger.Warn("playlist refresh failed", "error", err, "playlist", name)
			return
		}
		s.ch <- PlaylistRefreshed{Playlist: domain.Playlist{Name: name, Tracks: tracks}}
	}()
}

// PlaylistApplyResult tells the consumer what an applied message carried.
type PlaylistApplyResult struct {
	// Done is true once the bulk pass finished; the side-cache has been
	// persisted.
	Done bool
	// Catalog is non-nil when the playlist catalog arrived.
	Catalog []domain.PlaylistInfo
	// Progress is a human-readable loading status, "" otherwise.
	Progress string
	// Loaded names the playlist that was inserted, "" otherwise.
	Loaded string
	// Refreshed names the playlist overwritten by a forced refresh.
	Refreshed string
}

// ApplyPlaylistMessage mutates the side-cache for one pipeline message; the
// single consumer calls it in arrival order.
func ApplyPlaylistMessage(c *cache.PlaylistCache, msg PlaylistMessage, logger *slog.Logger) PlaylistApplyResult {
	if logger == nil {
		logger = slog.Default()
	}

	switch m := msg.(type) {
	case PlaylistCatalog:
		if m.Playlists == nil {
			return PlaylistApplyResult{Catalog: []domain.PlaylistInfo{}}
		}
		return PlaylistApplyResult{Catalog: m.Playlists}

	case PlaylistProgress:
		return PlaylistApplyResult{
			Progress: progressText(m),
		}

	case PlaylistLoaded:
		c.Insert(m.Playlist)
		return PlaylistApplyResult{Loaded: m.Playlist.Name}

	case PlaylistRefreshed:
		c.Insert(m.Playlist)
		if err := c.Save(); err != nil {
			logger.Error("playlist cache save failed", "error", err)
		}
		return PlaylistApplyResult{Refreshed: m.Playlist.Name}

	case PlaylistSyncDone:
		if err := c.Save(); err != nil {
			logger.Error("playlist cache save failed", "error", err)
		}
		return PlaylistApplyResult{Done: true}
	}
	return PlaylistApplyResult{}
}

func progressText(m PlaylistProgress) string {
	return fmt.Sprintf("Loading playlists (%d/%d) %s...", m.Current, m.Total, m.Name)
}
