package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const settingsFile = "settings.json"

// Settings is the small user-preference document stored beside the caches.
// It follows the same load-or-default pattern: reading never fails outward.
type Settings struct {
	HighlightColor string `json:"highlight_color"`
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	return Settings{HighlightColor: "cyan"}
}

// LoadSettings reads settings from dir, falling back to defaults on any
// missing, unreadable, or corrupt file.
func LoadSettings(dir string) Settings {
	s := DefaultSettings()
	if dir == "" {
		return s
	}
	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings()
	}
	if s.HighlightColor == "" {
		s.HighlightColor = DefaultSettings().HighlightColor
	}
	return s
}

// SaveSettings rewrites the settings document.
func SaveSettings(dir string, s Settings) error {
	if dir == "" {
		return fmt.Errorf("settings directory unavailable")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(dir, settingsFile), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
