package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lborak/cleftmeter/internal/log"
)

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# CleftMeter Configuration

# Path to the save/load history database
# history_db: ~/.local/share/cleftmeter/history.db

# UI settings for the annotate view
ui:
  show_values: true        # Show computed distances and angles alongside definitions
  coordinate_decimals: 2   # Decimals shown for coordinates (files always store six)

# Watch mode settings
watch:
  debounce_ms: 500   # Coalesce bursts of file events into one reload

# Tracing configuration
# Emits spans for load, save and recompute when enabled
# tracing:
#   enabled: false      # Enable/disable tracing (default: false)
#   exporter: file      # Export backend: file or stdout (default: file)
#   file_path: ~/.config/cleftmeter/traces/traces.jsonl
#   service_name: cleftmeter
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
