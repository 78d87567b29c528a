// Package script implements the library source over an external helper
// command. The helper owns the automation of the real music player; this
// client only execs it with a subcommand per operation and decodes the JSON
// document it prints to stdout, keeping the boundary typed.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// Client runs one helper invocation per library operation.
type Client struct {
	command string
	timeout time.Duration
	logger  *slog.Logger
}

var _ domain.LibrarySource = (*Client)(nil)

// New creates a script-backed library source.
func New(command string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{command: command, timeout: timeout, logger: logger}
}

// countDoc is the helper's response to total-count.
type countDoc struct {
	Total int `json:"total"`
}

// playlistInfoDoc is one catalog entry as printed by the helper.
type playlistInfoDoc struct {
	Name       string `json:"name"`
	TrackCount int    `json:"track_count"`
}

func (c *Client) TotalTrackCount(ctx context.Context) (int, error) {
	var doc countDoc
	if err := c.call(ctx, &doc, "total-count"); err != nil {
		return 0, err
	}
	return doc.Total, nil
}

func (c *Client) TracksBatch(ctx context.Context, start, count int) ([]domain.Track, error) {
	var tracks []domain.Track
	err := c.call(ctx, &tracks, "tracks-batch", strconv.Itoa(start), strconv.Itoa(count))
	return tracks, err
}

func (c *Client) TracksAddedSince(ctx context.Context, cutoff int64) ([]domain.Track, error) {
	var tracks []domain.Track
	err := c.call(ctx, &tracks, "tracks-added-since", strconv.FormatInt(cutoff, 10))
	return tracks, err
}

func (c *Client) Playlists(ctx context.Context) ([]domain.PlaylistInfo, error) {
	var docs []playlistInfoDoc
	if err := c.call(ctx, &docs, "playlists"); err != nil {
		return nil, err
	}
	infos := make([]domain.PlaylistInfo, len(docs))
	for i, d := range docs {
		infos[i] = domain.PlaylistInfo{Name: d.Name, TrackCount: d.TrackCount}
	}
	return infos, nil
}

func (c *Client) PlaylistTracks(ctx context.Context, name string) ([]domain.PlaylistTrack, error) {
	var tracks []domain.PlaylistTrack
	err := c.call(ctx, &tracks, "playlist-tracks", name)
	return tracks, err
}

// call execs the helper with args and decodes stdout into dest.
func (c *Client) call(ctx context.Context, dest interface{}, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := exec.CommandContext(ctx, c.command, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return fmt.Errorf("%s %s: %w: %s", c.command, args[0], err, exitErr.Stderr)
		}
		return fmt.Errorf("%s %s: %w", c.command, args[0], err)
	}
	c.logger.Debug("helper call", "op", args[0], "duration", time.Since(start))

	if err := json.Unmarshal(out, dest); err != nil {
		return fmt.Errorf("%s %s: decode output: %w", c.command, args[0], err)
	}
	return nil
}
