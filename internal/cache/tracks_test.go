package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

func track(name, artist, album string) domain.Track {
	return domain.NewTrack(name, artist, album, "", 0, 0, 0, "", 0, false)
}

var ignoreSearchKey = cmpopts.IgnoreFields(domain.Track{}, "SearchKey")

func TestLoadTrackCacheMissingFile(t *testing.T) {
	t.Parallel()

	c := LoadTrackCache(t.TempDir())

	require.True(t, c.FreshBuild)
	require.Equal(t, 0, c.TotalTracks)
	require.Equal(t, 0, c.LoadedTracks)
	require.Empty(t, c.Tracks)
	require.False(t, c.IsComplete())
}

func TestLoadTrackCacheCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, trackCacheFile), []byte("{not json"), 0o644))

	c := LoadTrackCache(dir)

	require.False(t, c.FreshBuild, "corrupt file is not a fresh build")
	require.Equal(t, 0, c.TotalTracks)
	require.Empty(t, c.Tracks)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := LoadTrackCache(dir)
	c.TotalTracks = 2
	c.AddTracks([]domain.Track{
		domain.NewTrack("Song A", "Artist", "Album", "Sunday, September 13, 2015 at 3:44:42", 2015, 1, 1, "3:08", 4, true),
		domain.NewTrack("Song B", "Artist", "Album", "", 2015, 2, 1, "4:01", 0, false),
	})
	c.UpdateTimestamp()
	require.NoError(t, c.Save())

	loaded := LoadTrackCache(dir)

	require.False(t, loaded.FreshBuild)
	require.Equal(t, c.TotalTracks, loaded.TotalTracks)
	require.Equal(t, c.LoadedTracks, loaded.LoadedTracks)
	require.NotNil(t, loaded.LastUpdated)
	require.Equal(t, *c.LastUpdated, *loaded.LastUpdated)
	if diff := cmp.Diff(c.Tracks, loaded.Tracks, ignoreSearchKey); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}
	// Search keys are not persisted; they come back on first search.
	require.Empty(t, loaded.Tracks[0].SearchKey)
	loaded.Search("song")
	require.Equal(t, "song a artist album", loaded.Tracks[0].SearchKey)
}

func TestSaveWithoutCacheDir(t *testing.T) {
	t.Parallel()

	c := LoadTrackCache("")
	require.True(t, c.FreshBuild)
	require.Error(t, c.Save())
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	require.False(t, c.IsComplete(), "zero total is never complete")

	c.TotalTracks = 10
	c.LoadedTracks = 9
	require.False(t, c.IsComplete())

	c.LoadedTracks = 10
	require.True(t, c.IsComplete())

	c.LoadedTracks = 11
	require.True(t, c.IsComplete())
}

func TestAddTracksRecomputesLoaded(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{track("A", "X", "M"), track("B", "X", "M")})
	require.Equal(t, 2, c.LoadedTracks)

	c.AddTracks([]domain.Track{track("C", "X", "M")})
	require.Equal(t, 3, c.LoadedTracks)
}

func TestUpsertIdempotent(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	batch := []domain.Track{track("A", "X", "M"), track("B", "X", "M")}

	require.Equal(t, 2, c.UpsertTracks(batch))
	before := append([]domain.Track(nil), c.Tracks...)

	require.Equal(t, 0, c.UpsertTracks(batch))
	require.Equal(t, 2, c.LoadedTracks)
	if diff := cmp.Diff(before, c.Tracks); diff != "" {
		t.Errorf("record set changed on idempotent upsert (-want +got):\n%s", diff)
	}
}

func TestUpsertUpdatesMutableFields(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.UpsertTracks([]domain.Track{
		domain.NewTrack("A", "X", "M", "old", 2000, 1, 1, "3:00", 1, false),
	})

	added := c.UpsertTracks([]domain.Track{
		domain.NewTrack("A", "X", "M", "new", 2001, 2, 2, "3:05", 7, true),
	})

	require.Equal(t, 0, added)
	require.Equal(t, 1, c.LoadedTracks)
	got := c.Tracks[0]
	require.Equal(t, "new", got.DateAdded)
	require.Equal(t, 2001, got.Year)
	require.Equal(t, 2, got.TrackNum)
	require.Equal(t, 2, got.DiscNum)
	require.Equal(t, "3:05", got.Time)
	require.Equal(t, 7, got.PlayCount)
	require.True(t, got.Favorited)
	// Identity triple stays put.
	require.Equal(t, "A", got.Name)
	require.Equal(t, "X", got.Artist)
	require.Equal(t, "M", got.Album)
}

func TestUpsertNewKeyAppends(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.UpsertTracks([]domain.Track{track("A", "X", "M")})

	require.Equal(t, 1, c.UpsertTracks([]domain.Track{track("A", "X", "Other")}))
	require.Equal(t, 2, c.LoadedTracks)
}

func TestTracksByAlbumOrder(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		domain.NewTrack("D2T1", "X", "Album", "", 0, 1, 2, "", 0, false),
		domain.NewTrack("D1T2", "X", "Album", "", 0, 2, 1, "", 0, false),
		domain.NewTrack("Other", "X", "Different", "", 0, 1, 1, "", 0, false),
		domain.NewTrack("D1T1", "X", "Album", "", 0, 1, 1, "", 0, false),
	})

	got := c.TracksByAlbum("Album")

	require.Len(t, got, 3)
	require.Equal(t, []string{"D1T1", "D1T2", "D2T1"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestRecentAlbumsDedupAndOrder(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		domain.NewTrack("a1", "ArtistA", "A", "Monday, January 5, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
		domain.NewTrack("a2", "ArtistA", "A", "Monday, January 6, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
		domain.NewTrack("b1", "ArtistB", "B", "Monday, January 7, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
	})

	got := c.RecentAlbums(10)

	require.Equal(t, []AlbumRef{
		{Album: "B", Artist: "ArtistB"},
		{Album: "A", Artist: "ArtistA"},
	}, got)
}

func TestRecentAlbumsSkipsEmptyAndHonorsLimit(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		domain.NewTrack("single", "X", "", "Monday, January 9, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
		domain.NewTrack("b", "X", "B", "Monday, January 8, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
		domain.NewTrack("c", "X", "C", "Monday, January 7, 2020 at 1:00:00", 0, 0, 0, "", 0, false),
	})

	got := c.RecentAlbums(1)

	require.Equal(t, []AlbumRef{{Album: "B", Artist: "X"}}, got)
}

func TestRecentAlbumsUnparseableDateSortsOldest(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		domain.NewTrack("no date", "X", "NoDate", "", 0, 0, 0, "", 0, false),
		domain.NewTrack("dated", "X", "Dated", "Monday, January 5, 1971 at 1:00:00", 0, 0, 0, "", 0, false),
	})

	got := c.RecentAlbums(10)

	require.Equal(t, "Dated", got[0].Album)
	require.Equal(t, "NoDate", got[1].Album)
}

func TestFormatLastUpdated(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	require.Equal(t, "", c.FormatLastUpdated())

	c.UpdateTimestamp()
	got := c.FormatLastUpdated()
	require.Contains(t, got, "Last updated: ")
}
