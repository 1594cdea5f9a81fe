package models

import "time"

// TimerConfig carries the rest-timer defaults an execution inherits
// from its PlannedExercise.
type TimerConfig struct {
	DefaultRestSeconds int  `json:"default_rest_seconds"`
	AutoStart          bool `json:"auto_start"`
	NotifyOnComplete   bool `json:"notify_on_complete"`
	SoundOnComplete    bool `json:"sound_on_complete"`
}

// ExerciseExecution is the transient run-through of one
// PlannedExercise, set by set. CurrentSet is 1-based, monotonically
// non-decreasing and terminates at TotalSets+1; the invariant
// len(CompletedSets) == CurrentSet-1 holds after every transition.
type ExerciseExecution struct {
	ID           string        `json:"id"`
	ExerciseID   string        `json:"exercise_id"` // PlannedExercise.ID
	DefinitionID string        `json:"definition_id"`
	DayID        string        `json:"day_id"`
	Name         string        `json:"name"`
	CurrentSet   int           `json:"current_set"`
	TotalSets    int           `json:"total_sets"`
	CompletedSets []ExecutedSet `json:"completed_sets"`
	TimerConfig  TimerConfig   `json:"timer_config"`
	StartedAt    time.Time     `json:"started_at"`
}

// SetInput is the working data for the set currently being performed.
type SetInput struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	RPE    float64 `json:"rpe,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

// ExerciseProgress is the crash-recovery snapshot for a mid-flight
// execution, keyed by PlannedExercise ID in the state. It is removed on
// normal completion or explicit cancellation; if the process dies it
// survives in storage and is rehydrated on the next load.
type ExerciseProgress struct {
	Execution  ExerciseExecution `json:"execution"`
	CurrentSet SetInput          `json:"current_set_data"`
	SavedAt    time.Time         `json:"saved_at"`
}

// CompletedExerciseInfo marks a planned exercise as done for today so
// the UI can short-circuit re-execution. Cleared at day rollover or on
// explicit redo.
type CompletedExerciseInfo struct {
	Logged      LoggedExercise `json:"logged_exercise"`
	CompletedAt time.Time      `json:"completed_at"`
}

// DailySnapshot is the archived record produced by a day rollover: the
// prior day's completion bookkeeping, frozen for historical display.
type DailySnapshot struct {
	Date       string                           `json:"date"` // YYYY-MM-DD
	Completed  map[string]CompletedExerciseInfo `json:"completed_exercises"`
	Progress   map[string]ExerciseProgress      `json:"exercise_progress"`
	ArchivedAt time.Time                        `json:"archived_at"`
}

// RestTimerState is a serialization placeholder kept for
// snapshot-format compatibility. Nothing writes it at runtime — the
// live countdown is owned by the resttimer manager — and it is always
// reset on load.
type RestTimerState struct {
	ExerciseName     string    `json:"exercise_name"`
	CurrentSet       int       `json:"current_set"`
	TotalSets        int       `json:"total_sets"`
	RestSeconds      int       `json:"rest_seconds"`
	RemainingSeconds int       `json:"remaining_seconds"`
	StartedAt        time.Time `json:"started_at"`
}
