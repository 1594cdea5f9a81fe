// Package backup serializes the entire workout state to a portable
// JSON document and back. Import is all-or-nothing: a payload missing
// required collections is rejected and the store is left untouched.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/persist"
)

// Export writes the full state, wrapped in the versioned envelope, to
// the given path.
func Export(state models.WorkoutState, path string) error {
	env := persist.Envelope{
		Version:   persist.SchemaVersion,
		Data:      state,
		LastSaved: time.Now(),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import parses and validates a backup document. It returns the state
// ready to dispatch as a bulk load; validation failures are
// user-facing errors and leave everything untouched.
func Import(path string) (models.WorkoutState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.WorkoutState{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	return Parse(data)
}

// Parse validates a raw backup payload.
func Parse(data []byte) (models.WorkoutState, error) {
	var env struct {
		Version string          `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return models.WorkoutState{}, fmt.Errorf("backup is not valid JSON: %w", err)
	}
	if env.Version == "" {
		return models.WorkoutState{}, fmt.Errorf("backup is missing a format version")
	}
	if env.Data == nil {
		return models.WorkoutState{}, fmt.Errorf("backup is missing the data section")
	}

	// Check required collections before committing to a full decode so
	// the error names what is actually wrong.
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &shape); err != nil {
		return models.WorkoutState{}, fmt.Errorf("backup data section is malformed: %w", err)
	}
	for _, key := range []string{"days", "sessions", "logged_exercises"} {
		if _, ok := shape[key]; !ok {
			return models.WorkoutState{}, fmt.Errorf("backup is missing required collection %q", key)
		}
	}

	var state models.WorkoutState
	if err := json.Unmarshal(env.Data, &state); err != nil {
		return models.WorkoutState{}, fmt.Errorf("backup data does not match the expected shape: %w", err)
	}

	state.EnsureMaps()
	state.ResetEphemeral()
	return state, nil
}
