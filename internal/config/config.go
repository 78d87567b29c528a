package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Source  SourceConfig  `mapstructure:"source"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig holds cache placement configuration.
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // "" = per-platform default
}

// SyncConfig tunes the background reconciliation.
type SyncConfig struct {
	BatchSize    int   `mapstructure:"batch_size"`     // records per full-build fetch
	SaveEvery    int   `mapstructure:"save_every"`     // persist every N records during a build
	BatchDelayMS int   `mapstructure:"batch_delay_ms"` // pause between full-build fetches
	CutoffMargin int64 `mapstructure:"cutoff_margin"`  // seconds subtracted from last_updated for the incremental cutoff
}

// SourceConfig points at the helper command that talks to the music player.
type SourceConfig struct {
	Command string `mapstructure:"command"`
	Timeout int    `mapstructure:"timeout"` // per-call timeout in seconds
}

// UIConfig holds UI configuration.
type UIConfig struct {
	RecentAlbums int `mapstructure:"recent_albums"` // size of the recently-added pane
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{Dir: ""},
		Sync: SyncConfig{
			BatchSize:    50,
			SaveEvery:    100,
			BatchDelayMS: 100,
			CutoffMargin: 86400,
		},
		Source: SourceConfig{
			Command: "music-tui-helper",
			Timeout: 60,
		},
		UI: UIConfig{RecentAlbums: 30},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS.
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "music-tui", "music-tui.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "music-tui", "music-tui.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS.
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "music-tui")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "music-tui")
	}
}

// LoadConfig loads configuration from file and environment.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MUSIC_TUI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
