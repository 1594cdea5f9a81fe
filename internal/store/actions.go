package store

import (
	"time"

	"github.com/pedrohrf/ironlog/internal/models"
)

// Action is a named state transition. Every mutation of the workout
// state goes through one of the concrete actions below; anything that
// needs the current time or a fresh ID receives it in the action so
// the reducer stays pure.
type Action interface {
	name() string
}

type AddDay struct{ Day models.WorkoutDay }

type UpdateDay struct{ Day models.WorkoutDay }

type DeleteDay struct{ DayID string }

type AddPlannedExercise struct {
	DayID    string
	Exercise models.PlannedExercise
}

type UpdatePlannedExercise struct {
	DayID    string
	Exercise models.PlannedExercise
}

type DeletePlannedExercise struct {
	DayID      string
	ExerciseID string
}

// LogExercise appends to the flat log and upserts into the session for
// (Date, DayID). SessionID is only used when no session exists yet for
// that pair; re-logging the same definition within a session replaces
// the prior entry.
type LogExercise struct {
	Logged    models.LoggedExercise
	Date      string // YYYY-MM-DD, "today" at dispatch time
	SessionID string
	Now       time.Time
}

type SetActiveExercise struct {
	ExerciseID string
	Execution  *models.ExerciseExecution
}

type ClearActiveExercise struct{}

type SaveExerciseProgress struct {
	ExerciseID string
	Progress   models.ExerciseProgress
}

type ClearExerciseProgress struct{ ExerciseID string }

type MarkExerciseCompleted struct {
	ExerciseID string
	Info       models.CompletedExerciseInfo
}

type ClearCompletedExercise struct{ ExerciseID string }

type ClearAllCompleted struct{}

type DismissShareToast struct{ DayID string }

type ResetShareToast struct{ DayID string }

// ArchiveDayRollover freezes the current completion bookkeeping into a
// dated snapshot and resets it for NewDate. Durable logs are untouched.
type ArchiveDayRollover struct {
	NewDate string
	Now     time.Time
}

// LoadState replaces the whole state (boot hydration and backup
// import).
type LoadState struct{ State models.WorkoutState }

func (AddDay) name() string                { return "ADD_DAY" }
func (UpdateDay) name() string             { return "UPDATE_DAY" }
func (DeleteDay) name() string             { return "DELETE_DAY" }
func (AddPlannedExercise) name() string    { return "ADD_PLANNED_EXERCISE" }
func (UpdatePlannedExercise) name() string { return "UPDATE_PLANNED_EXERCISE" }
func (DeletePlannedExercise) name() string { return "DELETE_PLANNED_EXERCISE" }
func (LogExercise) name() string           { return "LOG_EXERCISE" }
func (SetActiveExercise) name() string     { return "SET_ACTIVE_EXERCISE" }
func (ClearActiveExercise) name() string   { return "CLEAR_ACTIVE_EXERCISE" }
func (SaveExerciseProgress) name() string  { return "SAVE_EXERCISE_PROGRESS" }
func (ClearExerciseProgress) name() string { return "CLEAR_EXERCISE_PROGRESS" }
func (MarkExerciseCompleted) name() string { return "MARK_EXERCISE_COMPLETED" }
func (ClearCompletedExercise) name() string {
	return "CLEAR_COMPLETED_EXERCISE"
}
func (ClearAllCompleted) name() string  { return "CLEAR_ALL_COMPLETED" }
func (DismissShareToast) name() string  { return "DISMISS_SHARE_TOAST" }
func (ResetShareToast) name() string    { return "RESET_SHARE_TOAST" }
func (ArchiveDayRollover) name() string { return "ARCHIVE_DAY_ROLLOVER" }
func (LoadState) name() string          { return "LOAD_STATE" }
