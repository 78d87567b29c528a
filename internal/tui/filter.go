package tui

import (
	"github.com/sahilm/fuzzy"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// filterPlaylists narrows the playlist pane with fuzzy matching as the user
// types. An empty pattern returns the catalog unchanged.
func filterPlaylists(catalog []domain.PlaylistInfo, pattern string) []domain.PlaylistInfo {
	if pattern == "" {
		return catalog
	}
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	matches := fuzzy.Find(pattern, names)
	filtered := make([]domain.PlaylistInfo, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, catalog[m.Index])
	}
	return filtered
}
