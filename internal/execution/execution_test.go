package execution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/resttimer"
	"github.com/pedrohrf/ironlog/internal/store"
)

func testPlanned() models.PlannedExercise {
	return models.PlannedExercise{
		ID:           "ex-1",
		DefinitionID: "bench",
		Name:         "Supino reto",
		TargetSets:   3,
		TargetReps:   10,
		TargetWeight: 80,
		RestSeconds:  90,
	}
}

func newTestMachine(t *testing.T, planned models.PlannedExercise) (*Machine, *store.Store, *resttimer.Manager) {
	t.Helper()
	st := store.New(models.NewInitialState())
	timers := resttimer.NewManager()
	return New(planned, "day-1", st, timers), st, timers
}

func TestNewClaimsActiveSlot(t *testing.T) {
	m, st, _ := newTestMachine(t, testPlanned())

	state := st.State()
	assert.Equal(t, "ex-1", state.ActiveExercise)
	require.NotNil(t, state.ActiveExecution)
	assert.Equal(t, 1, state.ActiveExecution.CurrentSet)

	// Working fields start from the plan's targets.
	assert.Equal(t, models.SetInput{Reps: 10, Weight: 80}, m.CurrentInput())
}

func TestCompleteSetAdvancesAndHoldsInvariant(t *testing.T) {
	m, _, _ := newTestMachine(t, testPlanned())

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))

	exec := m.Execution()
	assert.Equal(t, 2, exec.CurrentSet)
	assert.Len(t, exec.CompletedSets, exec.CurrentSet-1)
	assert.Equal(t, PhaseSetInProgress, m.Phase())

	// Working fields reset to the plan defaults for the next set.
	assert.Equal(t, models.SetInput{Reps: 10, Weight: 80}, m.CurrentInput())
}

func TestCompleteRejectsZeroReps(t *testing.T) {
	m, _, _ := newTestMachine(t, testPlanned())
	assert.Error(t, m.CompleteCurrentSet(models.SetInput{Reps: 0, Weight: 80}))
	assert.Len(t, m.Execution().CompletedSets, 0)
}

func TestSkipRecordsZeroSetWithoutTimerOrRecord(t *testing.T) {
	planned := testPlanned()
	planned.AutoStartTimer = true
	m, _, timers := newTestMachine(t, planned)

	require.NoError(t, m.SkipCurrentSet())

	exec := m.Execution()
	require.Len(t, exec.CompletedSets, 1)
	set := exec.CompletedSets[0]
	assert.Zero(t, set.Reps)
	assert.Zero(t, set.Weight)
	assert.Equal(t, models.SkippedSetNote, set.Notes)
	assert.False(t, set.IsPersonalRecord)

	_, running := timers.Active()
	assert.False(t, running, "skipping a set must not start the rest timer")
}

func TestAutoStartTimerBetweenSets(t *testing.T) {
	planned := testPlanned()
	planned.AutoStartTimer = true
	m, _, timers := newTestMachine(t, planned)

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))

	snap, running := timers.Active()
	require.True(t, running)
	assert.Equal(t, "ex-1", snap.ExerciseID)
	assert.Equal(t, 90, snap.RestSeconds)

	// Finishing the final set transitions to finalizing with no timer.
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 9, Weight: 80}))
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 8, Weight: 80}))
	assert.Equal(t, PhaseFinalizing, m.Phase())
}

func TestPersonalRecordDetectedAgainstHistory(t *testing.T) {
	st := store.New(models.WorkoutState{
		LoggedExercises: []models.LoggedExercise{
			{DefinitionID: "bench", Weight: 80, Volume: 2400},
		},
	})
	m := New(testPlanned(), "day-1", st, resttimer.NewManager())

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 85}))
	assert.True(t, m.Execution().CompletedSets[0].IsPersonalRecord)

	// A first-ever definition has no baseline, so no record.
	planned := testPlanned()
	planned.ID = "ex-2"
	planned.DefinitionID = "deadlift"
	m2 := New(planned, "day-1", st, resttimer.NewManager())
	require.NoError(t, m2.CompleteCurrentSet(models.SetInput{Reps: 5, Weight: 140}))
	assert.False(t, m2.Execution().CompletedSets[0].IsPersonalRecord)
}

func TestFinalizeAggregatesAndReconciles(t *testing.T) {
	m, st, _ := newTestMachine(t, testPlanned())

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 9, Weight: 82.5}))
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 8, Weight: 82.5}))
	require.Equal(t, PhaseFinalizing, m.Phase())

	var notified *models.LoggedExercise
	m.OnExerciseComplete = func(le models.LoggedExercise) { notified = &le }

	logged, err := m.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 3, logged.Sets)
	assert.Equal(t, 9, logged.Reps)
	assert.Equal(t, 81.7, logged.Weight)
	assert.Equal(t, 2202.5, logged.Volume)
	require.NotNil(t, notified)
	assert.Equal(t, logged.ID, notified.ID)

	state := st.State()
	assert.Len(t, state.LoggedExercises, 1)
	assert.Contains(t, state.CompletedExercises, "ex-1")
	assert.NotContains(t, state.ExerciseProgress, "ex-1")
	assert.Empty(t, state.ActiveExercise)
	assert.Equal(t, PhaseDone, m.Phase())

	// Finalize is one-shot.
	_, err = m.Finalize()
	assert.Error(t, err)
}

func TestFinalizeWithSkippedSetDepressesAverages(t *testing.T) {
	m, _, _ := newTestMachine(t, testPlanned())

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))
	require.NoError(t, m.SkipCurrentSet())
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))

	logged, err := m.Finalize()
	require.NoError(t, err)

	// Skipped sets count in the denominator: (10+0+10)/3 rounds to 7.
	assert.Equal(t, 3, logged.Sets)
	assert.Equal(t, 7, logged.Reps)
	assert.Equal(t, 53.3, logged.Weight)
	assert.Equal(t, 1600.0, logged.Volume)
}

func TestProgressSavedAndResumable(t *testing.T) {
	m, st, timers := newTestMachine(t, testPlanned())

	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))
	m.UpdateCurrentSet(models.SetInput{Reps: 8, Weight: 85, Notes: "pegada fechada"})

	progress, ok := st.State().ExerciseProgress["ex-1"]
	require.True(t, ok)
	assert.Equal(t, 2, progress.Execution.CurrentSet)
	assert.Equal(t, "pegada fechada", progress.CurrentSet.Notes)

	// The process dies here; a fresh machine resumes from the snapshot.
	resumed := Resume(progress, testPlanned(), st, timers)
	exec := resumed.Execution()
	assert.Equal(t, 2, exec.CurrentSet)
	assert.Len(t, exec.CompletedSets, 1)
	assert.Equal(t, models.SetInput{Reps: 8, Weight: 85, Notes: "pegada fechada"}, resumed.CurrentInput())
	assert.Equal(t, PhaseSetInProgress, resumed.Phase())

	require.NoError(t, resumed.CompleteCurrentSet(models.SetInput{Reps: 8, Weight: 85}))
	require.NoError(t, resumed.CompleteCurrentSet(models.SetInput{Reps: 7, Weight: 85}))

	logged, err := resumed.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 3, logged.Sets)
}

func TestCancelDiscardsEverything(t *testing.T) {
	m, st, _ := newTestMachine(t, testPlanned())
	require.NoError(t, m.CompleteCurrentSet(models.SetInput{Reps: 10, Weight: 80}))

	m.Cancel()

	state := st.State()
	assert.Empty(t, state.ActiveExercise)
	assert.NotContains(t, state.ExerciseProgress, "ex-1")
	assert.Empty(t, state.LoggedExercises)
	assert.Equal(t, PhaseCancelled, m.Phase())
}

func TestAggregateEmptyExecution(t *testing.T) {
	logged := Aggregate(models.ExerciseExecution{
		DefinitionID: "bench",
		Name:         "Supino reto",
	}, time.Now())

	assert.Zero(t, logged.Sets)
	assert.Zero(t, logged.Reps)
	assert.Zero(t, logged.Weight)
	assert.Zero(t, logged.Volume)
}
