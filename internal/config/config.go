// Package config provides configuration types, defaults, and persistence for
// CleftMeter.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lborak/cleftmeter/internal/tracing"
)

// UIConfig holds annotate TUI options.
type UIConfig struct {
	// ShowValues controls whether measurement panels include computed values.
	ShowValues bool `mapstructure:"show_values"`

	// CoordinateDecimals is the number of decimals shown for coordinates in
	// the points panel (the file format always stores six).
	CoordinateDecimals int `mapstructure:"coordinate_decimals"`
}

// WatchConfig holds file watcher options for the watch command.
type WatchConfig struct {
	// DebounceMS coalesces bursts of file events into a single reload.
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Config holds all configuration options for cleftmeter.
type Config struct {
	// HistoryDB is the path of the SQLite save/load history database.
	HistoryDB string `mapstructure:"history_db"`

	UI      UIConfig       `mapstructure:"ui"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		HistoryDB: defaultHistoryDBPath(),
		UI: UIConfig{
			ShowValues:         true,
			CoordinateDecimals: 2,
		},
		Watch:   WatchConfig{DebounceMS: 500},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks option ranges that viper cannot enforce.
func Validate(cfg Config) error {
	if cfg.UI.CoordinateDecimals < 0 || cfg.UI.CoordinateDecimals > 6 {
		return fmt.Errorf("ui.coordinate_decimals must be between 0 and 6, got %d", cfg.UI.CoordinateDecimals)
	}
	if cfg.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMS)
	}
	return nil
}

func defaultHistoryDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cleftmeter/history.db"
	}
	return filepath.Join(home, ".local", "share", "cleftmeter", "history.db")
}
