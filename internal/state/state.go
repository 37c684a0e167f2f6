package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"dreamcpp/internal/logger" // Custom logger package for logging errors and debug info
)

// IndexSnapshot is the last remote index document that parsed successfully.
// It is only written when the index cache is enabled in the settings.
type IndexSnapshot struct {
	URL       string    `json:"url"`        // Index URL the body was fetched from
	FetchedAt time.Time `json:"fetched_at"` // When the body was fetched
	Body      string    `json:"body"`       // Raw index document
}

// State holds everything the tool keeps between invocations outside of a project.
type State struct {
	Index *IndexSnapshot `json:"index,omitempty"`
}

// LoadState loads the saved state from a JSON file at the given path.
// If the file does not exist, cannot be read or cannot be parsed, it returns an empty State.
func LoadState(path string) *State {
	// Read entire state JSON file into memory
	file, err := os.ReadFile(path)
	if err != nil {
		// Missing file is the normal case on first use
		logger.Debug("[DEBUG] No readable state at %s: %v\n", path, err)
		return &State{}
	}

	// Parse JSON data into a State struct
	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring corrupt state file %s: %v\n", path, err)
		return &State{}
	}
	return &st
}

// SaveState writes the given State struct to a JSON file at the given path.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated.
func SaveState(path string, st *State) {
	// Marshal the State struct into indented JSON bytes
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	// The state directory (~/.dreamcpp) may not exist yet
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s (%d bytes)\n", path, len(file))

	// Write the JSON bytes to the file with mode 0644 (read/write owner, read others)
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
