package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	trackCacheFile    = "tracks.json"
	playlistCacheFile = "playlists.json"
)

// DefaultDir returns the per-platform cache directory for this application,
// or "" when no cache location can be resolved.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "music-tui")
}

// writeSnapshot serializes v and rewrites path with the full snapshot.
// Every save is a whole-file rewrite; partial writes never hit the final path
// because the write goes through a temp file + rename.
func writeSnapshot(path string, v interface{}) error {
	if path == "" {
		return fmt.Errorf("cache directory unavailable")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readSnapshot decodes path into v. The bool reports whether a readable file
// existed at all; decode errors are returned so callers can distinguish a
// missing file from a corrupt one.
func readSnapshot(path string, v interface{}) (bool, error) {
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}
