package models

import "time"

// WorkoutDay is a user-created training day template (e.g. "Push A").
// Days are never auto-deleted; removing one is an explicit user action.
type WorkoutDay struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []PlannedExercise `json:"exercises"`
	CreatedAt time.Time         `json:"created_at"`
}

// PlannedExercise is the immutable target for one exercise within a day.
// It is only edited through explicit settings actions, never by an
// in-flight execution.
type PlannedExercise struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definition_id"`
	Name         string `json:"name"`

	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"`

	RestSeconds     int  `json:"rest_seconds"`
	AutoStartTimer  bool `json:"auto_start_timer"`
	AdvancedMetrics bool `json:"advanced_metrics"`
}

// WorkoutSession is one calendar occurrence of a WorkoutDay. It is
// created lazily the first time an exercise is logged for "today + this
// day", and its EndTime is set once every planned exercise of the day
// has a matching logged entry.
type WorkoutSession struct {
	ID        string           `json:"id"`
	DayID     string           `json:"day_id"`
	Date      string           `json:"date"` // YYYY-MM-DD
	StartTime time.Time        `json:"start_time"`
	EndTime   *time.Time       `json:"end_time,omitempty"`
	Exercises []LoggedExercise `json:"exercises"`
}

// ExecutedSet is one completed (or explicitly skipped) set. A skipped
// set is recorded with zero reps and weight and Notes set to
// SkippedSetNote.
type ExecutedSet struct {
	Reps             int       `json:"reps"`
	Weight           float64   `json:"weight"`
	RPE              float64   `json:"rpe,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	RestSeconds      int       `json:"rest_seconds"`
	IsPersonalRecord bool      `json:"is_personal_record"`
	CompletedAt      time.Time `json:"completed_at"`
}

// SkippedSetNote marks an ExecutedSet that was skipped rather than
// performed. The string is kept as-is for compatibility with data
// written by earlier releases.
const SkippedSetNote = "Série pulada"

// LoggedExercise is the durable record of a finished exercise.
//
// Reps and Weight are per-set averages, never sums; Volume is the sum
// of weight×reps over completed sets. IsPersonalRecord is true iff any
// completed set was flagged as a record.
type LoggedExercise struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definition_id"`
	DayID        string `json:"day_id"`
	Name         string `json:"name"`

	Sets             int     `json:"sets"`
	Reps             int     `json:"reps"`
	Weight           float64 `json:"weight"`
	Volume           float64 `json:"volume"`
	IsPersonalRecord bool    `json:"is_personal_record"`

	CompletedSets []ExecutedSet `json:"completed_sets"`
	LoggedAt      time.Time     `json:"logged_at"`
}
