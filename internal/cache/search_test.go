package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

func searchFixture() *TrackCache {
	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		track("Radio Silence", "IO", "Static Waves"),
		track("Biography", "The Velvets", "Early Years"),
		track("Night Drive", "io echoes", "City Lights"),
		track("Quiet Hours", "Marta Vane", "Static Waves"),
	})
	return c
}

func names(tracks []domain.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Name
	}
	return out
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	t.Parallel()

	c := searchFixture()
	require.Len(t, c.Search(""), 4)
	require.Len(t, c.Search("   "), 4)
}

func TestSearchSmartCaseGeneralTerm(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	// Lower-case matches case-insensitively, including "Biography" and the
	// artists "IO" and "io echoes".
	require.ElementsMatch(t,
		[]string{"Radio Silence", "Biography", "Night Drive"},
		names(c.Search("io")))

	// Any upper-case rune makes the term case-sensitive.
	require.Equal(t, []string{"Radio Silence"}, names(c.Search("IO")))
}

func TestSearchFieldFilterSubstring(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	require.ElementsMatch(t,
		[]string{"Radio Silence", "Night Drive"},
		names(c.Search("artist:io")))

	// Smart case applies inside field filters too.
	require.Equal(t, []string{"Radio Silence"}, names(c.Search("artist:IO")))
}

func TestSearchFieldFilterExactQuotes(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	require.Equal(t, []string{"Radio Silence"}, names(c.Search(`artist:"IO"`)))
	require.Equal(t, []string{"Radio Silence"}, names(c.Search("artist:'IO'")))

	// Exact means equality, not substring, and it is case-sensitive.
	require.Empty(t, c.Search(`artist:"io"`))
	require.Empty(t, c.Search(`artist:"I"`))
}

func TestSearchUnterminatedQuoteIsLiteral(t *testing.T) {
	t.Parallel()

	c := &TrackCache{}
	c.AddTracks([]domain.Track{
		track(`Say "Yes`, "X", "M"),
		track("Say Yes", "X", "M"),
	})

	got := c.Search(`name:"Yes`)

	require.Equal(t, []string{`Say "Yes`}, names(got))
}

func TestSearchEmptyFilterValueDropped(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	require.Len(t, c.Search("artist:"), 4)
	require.Len(t, c.Search(`artist:""`), 4)
}

func TestSearchPrefixCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	require.ElementsMatch(t,
		[]string{"Radio Silence", "Night Drive"},
		names(c.Search("ARTIST:io")))
}

func TestSearchAllConditionsMustHold(t *testing.T) {
	t.Parallel()

	c := searchFixture()

	require.Equal(t, []string{"Quiet Hours"},
		names(c.Search("album:static artist:vane")))
	require.Equal(t, []string{"Radio Silence"},
		names(c.Search("album:static radio")))
	require.Empty(t, c.Search("album:static velvets"))
}

func TestSearchRebuildsKeysAfterLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := LoadTrackCache(dir)
	c.AddTracks([]domain.Track{
		domain.NewTrack("Radio Silence", "IO", "Transmissions", "", 0, 0, 0, "", 0, false),
	})
	require.NoError(t, c.Save())

	loaded := LoadTrackCache(dir)
	require.Equal(t, []string{"Radio Silence"}, names(loaded.Search("silence")))
}
