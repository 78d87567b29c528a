package domain

import "context"

// LibrarySource provides access to the live music library. Implementations
// talk to the external automation layer; callers treat every method as slow.
type LibrarySource interface {
	// TotalTrackCount returns the source-reported library size.
	TotalTrackCount(ctx context.Context) (int, error)

	// TracksBatch returns up to count tracks starting at the 1-indexed offset.
	TracksBatch(ctx context.Context, start, count int) ([]Track, error)

	// TracksAddedSince returns tracks added at or after the Unix cutoff.
	TracksAddedSince(ctx context.Context, cutoff int64) ([]Track, error)

	// Playlists returns the full playlist catalog, built-ins included.
	Playlists(ctx context.Context) ([]PlaylistInfo, error)

	// PlaylistTracks returns the ordered track list of one playlist.
	PlaylistTracks(ctx context.Context, name string) ([]PlaylistTrack, error)
}
