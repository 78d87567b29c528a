package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krzmknt/macos-music-tui/internal/cache"
	"github.com/krzmknt/macos-music-tui/internal/config"
	"github.com/krzmknt/macos-music-tui/internal/log"
	"github.com/krzmknt/macos-music-tui/internal/source/script"
	libsync "github.com/krzmknt/macos-music-tui/internal/sync"
	"github.com/krzmknt/macos-music-tui/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("music-tui %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting music-tui", "version", Version)

	cacheDir := cfg.Cache.Dir
	if cacheDir == "" {
		cacheDir = cache.DefaultDir()
	}

	tracks := cache.LoadTrackCache(cacheDir)
	playlists := cache.LoadPlaylistCache(cacheDir)
	settings := config.LoadSettings(cacheDir)
	logger.Info("caches loaded",
		"tracks", tracks.LoadedTracks,
		"complete", tracks.IsComplete(),
		"fresh", tracks.FreshBuild,
		"playlists", len(playlists.Playlists))

	source := script.New(cfg.Source.Command, time.Duration(cfg.Source.Timeout)*time.Second, logger)

	opts := libsync.Options{
		BatchSize:    cfg.Sync.BatchSize,
		SaveEvery:    cfg.Sync.SaveEvery,
		BatchDelay:   time.Duration(cfg.Sync.BatchDelayMS) * time.Millisecond,
		CutoffMargin: cfg.Sync.CutoffMargin,
	}
	trackSyncer := libsync.NewTrackSyncer(source, opts, logger)
	playlistSyncer := libsync.NewPlaylistSyncer(source, logger)

	model := tui.NewModel(tracks, playlists, trackSyncer, playlistSyncer, opts,
		settings, cfg.UI.RecentAlbums, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
