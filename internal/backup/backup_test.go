package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrohrf/ironlog/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	state := models.NewInitialState()
	state.LastSeenDate = "2026-03-14"
	state.Days = []models.WorkoutDay{{ID: "day-1", Name: "Push A"}}
	state.LoggedExercises = []models.LoggedExercise{{ID: "log-1", DefinitionID: "bench", Volume: 2400}}
	state.ActiveExercise = "ex-1"
	state.TimerState = &models.RestTimerState{RemainingSeconds: 30}

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, Export(state, path))

	got, err := Import(path)
	require.NoError(t, err)

	assert.Equal(t, state.Days, got.Days)
	assert.Equal(t, state.LoggedExercises, got.LoggedExercises)
	assert.Equal(t, "2026-03-14", got.LastSeenDate)

	// Ephemeral runtime state never survives an import.
	assert.Empty(t, got.ActiveExercise)
	assert.Nil(t, got.TimerState)
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "not json at all"},
		{"missing version", `{"data":{"days":[],"sessions":[],"logged_exercises":[]}}`},
		{"missing data", `{"version":"2"}`},
		{"missing collection", `{"version":"2","data":{"days":[],"sessions":[]}}`},
		{"data not an object", `{"version":"2","data":[1,2,3]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

func TestParseInitializesMissingMaps(t *testing.T) {
	payload := `{"version":"2","data":{"days":[],"sessions":[],"logged_exercises":[]}}`
	state, err := Parse([]byte(payload))
	require.NoError(t, err)

	assert.NotNil(t, state.ExerciseProgress)
	assert.NotNil(t, state.CompletedExercises)
	assert.NotNil(t, state.DismissedToasts)
}

func TestExportIsReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	state := models.NewInitialState()
	state.LoggedExercises = []models.LoggedExercise{{ID: "log-1", LoggedAt: time.Now()}}
	require.NoError(t, Export(state, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n", "export is indented for human inspection")
}
