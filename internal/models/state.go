package models

// WorkoutState is the whole aggregate owned by the workout store.
//
// Days, Sessions, LoggedExercises and Archive are durable. The
// Progress/Completed/DismissedToasts dictionaries are day-scoped
// bookkeeping cleared by the rollover. ActiveExercise, ActiveExecution
// and TimerState are ephemeral: they may be serialized as part of a
// snapshot but are unconditionally reset when a snapshot is loaded.
type WorkoutState struct {
	Days            []WorkoutDay     `json:"days"`
	Sessions        []WorkoutSession `json:"sessions"`
	LoggedExercises []LoggedExercise `json:"logged_exercises"`

	ExerciseProgress   map[string]ExerciseProgress      `json:"exercise_progress"`
	CompletedExercises map[string]CompletedExerciseInfo `json:"completed_exercises"`
	DismissedToasts    map[string]bool                  `json:"dismissed_toasts"`

	Archive      []DailySnapshot `json:"archive"`
	LastSeenDate string          `json:"last_seen_date"` // YYYY-MM-DD

	ActiveExercise  string             `json:"active_exercise,omitempty"`
	ActiveExecution *ExerciseExecution `json:"active_execution,omitempty"`
	TimerState      *RestTimerState    `json:"timer_state,omitempty"`
}

// NewInitialState returns the hard-coded fallback state used when
// nothing can be loaded from storage.
func NewInitialState() WorkoutState {
	return WorkoutState{
		Days:               []WorkoutDay{},
		Sessions:           []WorkoutSession{},
		LoggedExercises:    []LoggedExercise{},
		ExerciseProgress:   map[string]ExerciseProgress{},
		CompletedExercises: map[string]CompletedExerciseInfo{},
		DismissedToasts:    map[string]bool{},
		Archive:            []DailySnapshot{},
	}
}

// ResetEphemeral clears the fields that must never survive a reload.
// Mid-exercise recovery goes through ExerciseProgress instead.
func (s *WorkoutState) ResetEphemeral() {
	s.ActiveExercise = ""
	s.ActiveExecution = nil
	s.TimerState = nil
}

// EnsureMaps initializes any nil dictionaries after deserialization.
func (s *WorkoutState) EnsureMaps() {
	if s.Days == nil {
		s.Days = []WorkoutDay{}
	}
	if s.Sessions == nil {
		s.Sessions = []WorkoutSession{}
	}
	if s.LoggedExercises == nil {
		s.LoggedExercises = []LoggedExercise{}
	}
	if s.ExerciseProgress == nil {
		s.ExerciseProgress = map[string]ExerciseProgress{}
	}
	if s.CompletedExercises == nil {
		s.CompletedExercises = map[string]CompletedExerciseInfo{}
	}
	if s.DismissedToasts == nil {
		s.DismissedToasts = map[string]bool{}
	}
	if s.Archive == nil {
		s.Archive = []DailySnapshot{}
	}
}
