package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/krzmknt/macos-music-tui/internal/cache"
	"github.com/krzmknt/macos-music-tui/internal/domain"
)

const (
	defaultBatchSize    = 50
	defaultSaveEvery    = 100
	defaultBatchDelay   = 100 * time.Millisecond
	defaultCutoffMargin = int64(86400) // one day, see Options.CutoffMargin
)

// Options tunes the track pipeline.
type Options struct {
	// BatchSize is the number of records pulled per full-build fetch.
	BatchSize int
	// SaveEvery bounds write frequency during a full build: the cache is
	// persisted whenever the loaded count crosses a multiple of this.
	SaveEvery int
	// BatchDelay is the pause between full-build fetches so the slow source
	// is not hammered.
	BatchDelay time.Duration
	// CutoffMargin is subtracted from last_updated when computing the
	// incremental fetch cutoff. It guards against records added while a
	// previous reconciliation was still in flight; a safety margin, not an
	// exact contract.
	CutoffMargin int64
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.SaveEvery <= 0 {
		o.SaveEvery = defaultSaveEvery
	}
	if o.BatchDelay <= 0 {
		o.BatchDelay = defaultBatchDelay
	}
	if o.CutoffMargin <= 0 {
		o.CutoffMargin = defaultCutoffMargin
	}
	return o
}

// TrackState is the cache snapshot the pipeline starts from. The pipeline
// owns no shared state; it sees the cache only through this copy.
type TrackState struct {
	Loaded      int
	LastUpdated *int64
	Complete    bool
}

// SnapshotTrackState captures the resume point from a cache.
func SnapshotTrackState(c *cache.TrackCache) TrackState {
	return TrackState{Loaded: c.LoadedTracks, LastUpdated: c.LastUpdated, Complete: c.IsComplete()}
}

// TrackSyncer reconciles the track cache against the library source. Run
// executes on its own goroutine and communicates exclusively through the
// message channel.
type TrackSyncer struct {
	source domain.LibrarySource
	opts   Options
	logger *slog.Logger
	ch     chan TrackMessage
}

// NewTrackSyncer creates a track pipeline.
func NewTrackSyncer(source domain.LibrarySource, opts Options, logger *slog.Logger) *TrackSyncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackSyncer{
		source: source,
		opts:   opts.withDefaults(),
		logger: logger,
		ch:     make(chan TrackMessage, 64),
	}
}

// Messages returns the receive side of the pipeline channel.
func (s *TrackSyncer) Messages() <-chan TrackMessage {
	return s.ch
}

// Run performs one reconciliation pass: a full build resumed from the
// snapshot offset when the cache is incomplete, otherwise an incremental
// refresh. Fetch failures end the pass without propagating; partial progress
// already sent stays applied. Always ends with TrackSyncDone.
func (s *TrackSyncer) Run(ctx context.Context, st TrackState) {
	defer func() { s.ch <- TrackSyncDone{} }()

	total, err := s.source.TotalTrackCount(ctx)
	if err != nil {
		s.logger.Warn("track sync: total count fetch failed", "error", err)
		return
	}
	if total == 0 {
		return
	}

	if st.Complete {
		s.refresh(ctx, st, total)
		return
	}
	s.build(ctx, st.Loaded, total)
}

// refresh pulls only records added since the cutoff and hands them off for an
// upsert merge.
func (s *TrackSyncer) refresh(ctx context.Context, st TrackState, total int) {
	if st.LastUpdated == nil {
		return
	}
	cutoff := *st.LastUpdated - s.opts.CutoffMargin
	if cutoff < 0 {
		cutoff = 0
	}

	tracks, err := s.source.TracksAddedSince(ctx, cutoff)
	if err != nil {
		s.logger.Warn("track sync: incremental fetch failed", "error", err, "cutoff", cutoff)
		return
	}
	if len(tracks) == 0 {
		return
	}
	initSearchKeys(tracks)
	s.logger.Debug("track sync: incremental records fetched", "count", len(tracks))
	s.ch <- TrackUpsert{Tracks: tracks, Total: total}
}

// build pulls fixed-size batches from the resume offset until the reported
// total is reached or a fetch fails.
func (s *TrackSyncer) build(ctx context.Context, offset, total int) {
	s.logger.Info("track sync: building cache", "from", offset, "total", total)

	for offset < total {
		batch, err := s.source.TracksBatch(ctx, offset+1, s.opts.BatchSize)
		if err != nil {
			s.logger.Warn("track sync: batch fetch failed", "error", err, "offset", offset)
			return
		}
		if len(batch) == 0 {
			// Source reported more tracks than it can deliver; stop rather
			// than spin.
			s.logger.Warn("track sync: empty batch before total reached", "offset", offset, "total", total)
			return
		}
		initSearchKeys(batch)
		offset += len(batch)
		s.ch <- TrackBatch{Tracks: batch, Loaded: offset, Total: total}
		time.Sleep(s.opts.BatchDelay)
	}
}

func initSearchKeys(tracks []domain.Track) {
	for i := range tracks {
		tracks[i].InitSearchKey()
	}
}

// TrackApplyResult tells the consumer what an applied message changed.
type TrackApplyResult struct {
	// Done is true once the pipeline pass has finished.
	Done bool
	// Added is the number of genuinely new tracks from an upsert, for the
	// "N new tracks added" notice.
	Added int
	// Changed is true when the record set or counters were touched and
	// derived views should be recomputed.
	Changed bool
}

// ApplyTrackMessage mutates the cache for one pipeline message. This is the
// only place background progress reaches the track cache, and it must run on
// the goroutine that owns the cache. Save failures are logged and ignored;
// the cache degrades to its last successful snapshot.
func ApplyTrackMessage(c *cache.TrackCache, msg TrackMessage, opts Options, logger *slog.Logger) TrackApplyResult {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	switch m := msg.(type) {
	case TrackBatch:
		c.AddTracks(m.Tracks)
		c.TotalTracks = m.Total
		if m.Loaded >= m.Total {
			c.UpdateTimestamp()
			if err := c.Save(); err != nil {
				logger.Error("track cache save failed", "error", err)
			}
			logger.Info("track cache build complete", "tracks", c.LoadedTracks)
		} else if m.Loaded%opts.SaveEvery == 0 {
			if err := c.Save(); err != nil {
				logger.Error("track cache save failed", "error", err)
			}
		}
		return TrackApplyResult{Changed: true}

	case TrackUpsert:
		added := c.UpsertTracks(m.Tracks)
		c.TotalTracks = m.Total
		// Pure updates persist the merged data but leave the timestamp
		// alone; moving it forward would make future cutoffs skip records
		// added during this pass.
		if added > 0 {
			c.UpdateTimestamp()
		}
		if err := c.Save(); err != nil {
			logger.Error("track cache save failed", "error", err)
		}
		return TrackApplyResult{Added: added, Changed: true}

	case TrackSyncDone:
		return TrackApplyResult{Done: true}
	}
	return TrackApplyResult{}
}
