package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"notedeck/log"
)

const StateFileName = "state.json"

// Hint bits for HintsSeen.
const (
	HintExportMenu uint32 = 1 << iota
	HintFilter
)

// AppState handles application-level state
type AppState interface {
	// GetHintsSeen returns the bitmask of hints already shown
	GetHintsSeen() uint32
	// SetHintsSeen updates the bitmask of hints already shown
	SetHintsSeen(seen uint32) error
	// HintSeen reports whether hint has been shown
	HintSeen(hint uint32) bool
	// GetLastExportFormat returns the export format chosen last
	GetLastExportFormat() string
	// SetLastExportFormat records the export format chosen last
	SetLastExportFormat(format string) error
	// RefreshFromDisk picks up writes made by another instance
	RefreshFromDisk() (bool, error)
}

// State represents the application state that persists between sessions
type State struct {
	// HintsSeen is a bitmask tracking which one-time hints have been shown
	HintsSeen uint32 `json:"hints_seen"`
	// LastExportFormat is the export menu item picked most recently
	LastExportFormat string `json:"last_export_format,omitempty"`

	// lastModTime tracks when we last read the state file (not serialized)
	lastModTime time.Time `json:"-"`
	// path overrides the default state file location (not serialized)
	path string `json:"-"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{}
}

// StatePath returns the default state file location.
func StatePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	statePath, err := StatePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}
	return LoadStateFrom(statePath)
}

// LoadStateFrom loads the state stored at statePath, creating it with defaults
// when it does not exist.
func LoadStateFrom(statePath string) *State {
	var state *State
	err := WithLock(statePath, false, func() error {
		var modTime time.Time
		if info, err := os.Stat(statePath); err == nil {
			modTime = info.ModTime()
		}

		data, err := os.ReadFile(statePath)
		if err != nil {
			return err
		}

		var loaded State
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("failed to parse state file: %w", err)
		}
		loaded.lastModTime = modTime
		state = &loaded
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		state = DefaultState()
		state.path = statePath
		if saveErr := state.Save(); saveErr != nil {
			log.WarningLog.Printf("failed to save default state: %v", saveErr)
		}
		return state
	default:
		log.WarningLog.Printf("failed to load state: %v", err)
		state = DefaultState()
	}
	state.path = statePath
	return state
}

// Save writes the state to its file under an exclusive lock.
func (s *State) Save() error {
	statePath := s.path
	if statePath == "" {
		var err error
		if statePath, err = StatePath(); err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return WithLock(statePath, true, func() error {
		if err := os.WriteFile(statePath, data, 0644); err != nil {
			return err
		}
		if info, err := os.Stat(statePath); err == nil {
			s.lastModTime = info.ModTime()
		}
		return nil
	})
}

// GetHintsSeen returns the bitmask of hints already shown
func (s *State) GetHintsSeen() uint32 {
	return s.HintsSeen
}

// SetHintsSeen updates the bitmask of hints already shown
func (s *State) SetHintsSeen(seen uint32) error {
	s.HintsSeen = seen
	return s.Save()
}

// HintSeen reports whether hint has been shown.
func (s *State) HintSeen(hint uint32) bool {
	return s.HintsSeen&hint != 0
}

// GetLastExportFormat returns the export format chosen last
func (s *State) GetLastExportFormat() string {
	return s.LastExportFormat
}

// SetLastExportFormat records the export format chosen last
func (s *State) SetLastExportFormat(format string) error {
	s.LastExportFormat = format
	return s.Save()
}

// RefreshFromDisk reloads the state if another process wrote it since it was
// last read. Returns true if the state was refreshed.
func (s *State) RefreshFromDisk() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat state file: %w", err)
	}
	if !info.ModTime().After(s.lastModTime) {
		return false, nil
	}

	fresh := LoadStateFrom(s.path)
	s.HintsSeen = fresh.HintsSeen
	s.LastExportFormat = fresh.LastExportFormat
	s.lastModTime = fresh.lastModTime
	return true, nil
}
