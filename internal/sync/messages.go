package sync

import "github.com/krzmknt/macos-music-tui/internal/domain"

// Messages flow one way, from a background pipeline to the single consumer
// that owns the caches. Within one pipeline they are applied strictly in send
// order; there is no ordering guarantee across pipelines.

// TrackMessage is emitted by the track pipeline.
type TrackMessage interface{ isTrackMessage() }

// TrackBatch carries one full-build batch. Loaded is the resumed offset after
// this batch, Total the source-reported library size.
type TrackBatch struct {
	Tracks []domain.Track
	Loaded int
	Total  int
}

// TrackUpsert carries the records of an incremental refresh. Only sent when
// at least one record came back.
type TrackUpsert struct {
	Tracks []domain.Track
	Total  int
}

// TrackSyncDone signals the end of a track pipeline pass, successful or not.
type TrackSyncDone struct{}

func (TrackBatch) isTrackMessage()    {}
func (TrackUpsert) isTrackMessage()   {}
func (TrackSyncDone) isTrackMessage() {}

// PlaylistMessage is emitted by the playlist pipeline.
type PlaylistMessage interface{ isPlaylistMessage() }

// PlaylistCatalog carries the filtered playlist catalog.
type PlaylistCatalog struct {
	Playlists []domain.PlaylistInfo
}

// PlaylistProgress reports which uncached playlist is being fetched.
type PlaylistProgress struct {
	Current int
	Total   int
	Name    string
}

// PlaylistLoaded carries one freshly fetched playlist from the bulk pass.
type PlaylistLoaded struct {
	Playlist domain.Playlist
}

// PlaylistRefreshed carries the result of an explicit single-playlist
// refresh; unlike PlaylistLoaded it is persisted immediately on apply.
type PlaylistRefreshed struct {
	Playlist domain.Playlist
}

// PlaylistSyncDone signals the end of the bulk playlist pass.
type PlaylistSyncDone struct{}

func (PlaylistCatalog) isPlaylistMessage()   {}
func (PlaylistProgress) isPlaylistMessage()  {}
func (PlaylistLoaded) isPlaylistMessage()    {}
func (PlaylistRefreshed) isPlaylistMessage() {}
func (PlaylistSyncDone) isPlaylistMessage()  {}
