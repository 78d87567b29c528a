package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, Settings{HighlightColor: "cyan"}, LoadSettings(t.TempDir()))
	require.Equal(t, DefaultSettings(), LoadSettings(""))
}

func TestLoadSettingsCorruptFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFile), []byte("nope"), 0o644))

	require.Equal(t, DefaultSettings(), LoadSettings(dir))
}

func TestLoadSettingsEmptyColorFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFile), []byte(`{"highlight_color":""}`), 0o644))

	require.Equal(t, "cyan", LoadSettings(dir).HighlightColor)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, SaveSettings(dir, Settings{HighlightColor: "magenta"}))

	require.Equal(t, "magenta", LoadSettings(dir).HighlightColor)
}

func TestSaveSettingsWithoutDir(t *testing.T) {
	t.Parallel()

	require.Error(t, SaveSettings("", DefaultSettings()))
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	require.Equal(t, 50, cfg.Sync.BatchSize)
	require.Equal(t, 100, cfg.Sync.SaveEvery)
	require.Equal(t, 100, cfg.Sync.BatchDelayMS)
	require.Equal(t, int64(86400), cfg.Sync.CutoffMargin)
	require.Equal(t, "music-tui-helper", cfg.Source.Command)
	require.Equal(t, 60, cfg.Source.Timeout)
	require.Equal(t, 30, cfg.UI.RecentAlbums)
	require.Equal(t, "INFO", cfg.Logging.Level)
	require.NotEmpty(t, cfg.Logging.File)
}
