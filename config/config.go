package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"notedeck/log"
)

const (
	ConfigFileName  = "config.json"
	defaultNotesDir = "notes"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".notedeck"), nil
}

// Config represents the application configuration
type Config struct {
	// NotesDir is the directory whose markdown files are listed.
	NotesDir string `json:"notes_dir"`
	// VimKeys adds j/k to the arrow keys inside overlays.
	VimKeys bool `json:"vim_keys"`
	// GapAbove is the margin kept between an overlay and its anchor's top edge.
	GapAbove int `json:"gap_above"`
	// GapBelow is the offset of an overlay below its anchor's bottom edge.
	GapBelow int `json:"gap_below"`
	// RowHeight is the estimated height of one overlay item, used before the
	// overlay has been measured.
	RowHeight int `json:"row_height"`
	// ShowTooltips shows a hint next to the export button when it has focus.
	ShowTooltips bool `json:"show_tooltips"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	notesDir := defaultNotesDir
	if home, err := os.UserHomeDir(); err == nil {
		notesDir = filepath.Join(home, defaultNotesDir)
	} else {
		log.ErrorLog.Printf("failed to get home directory: %v", err)
	}

	return &Config{
		NotesDir:     notesDir,
		VimKeys:      true,
		GapAbove:     1,
		GapBelow:     1,
		RowHeight:    1,
		ShowTooltips: true,
	}
}

// normalize replaces values that would break placement with their defaults.
func (c *Config) normalize() {
	if c.GapAbove < 0 {
		c.GapAbove = 0
	}
	if c.GapBelow < 0 {
		c.GapBelow = 0
	}
	if c.RowHeight < 1 {
		c.RowHeight = 1
	}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Fields missing from the file keep their defaults.
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	config.normalize()
	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
