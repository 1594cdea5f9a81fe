package persist

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/models"
)

// Legacy flat-file names used before the versioned envelope existed.
// Early releases wrote each collection to its own file with no version
// tag.
const (
	legacyDaysFile = "days.json"
	legacyLogsFile = "logs.json"
)

// migrateLegacy attempts to reconstruct a state from the pre-envelope
// flat files under dataDir. The bool reports whether anything legacy
// was found; absence is not an error.
func migrateLegacy(dataDir string) (models.WorkoutState, bool) {
	state := models.NewInitialState()
	found := false

	if data, err := os.ReadFile(filepath.Join(dataDir, legacyDaysFile)); err == nil {
		var days []models.WorkoutDay
		if err := json.Unmarshal(data, &days); err != nil {
			logger.Warn("ignoring unparseable legacy days file", "error", err)
		} else {
			state.Days = days
			found = true
		}
	}

	if data, err := os.ReadFile(filepath.Join(dataDir, legacyLogsFile)); err == nil {
		var logs []models.LoggedExercise
		if err := json.Unmarshal(data, &logs); err != nil {
			logger.Warn("ignoring unparseable legacy logs file", "error", err)
		} else {
			state.LoggedExercises = logs
			found = true
		}
	}

	if found {
		logger.Info("migrated legacy flat-file storage",
			"days", len(state.Days), "logged", len(state.LoggedExercises))
	}
	return state, found
}
