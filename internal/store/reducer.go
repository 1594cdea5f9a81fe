package store

import (
	"github.com/pedrohrf/ironlog/internal/models"
)

// Reduce computes the next state for an action. It is side-effect
// free: the input state is never mutated, and persistence, timers and
// notifications are driven by subscribers of the resulting state.
func Reduce(s models.WorkoutState, a Action) models.WorkoutState {
	switch act := a.(type) {
	case AddDay:
		next := clone(s)
		next.Days = append(next.Days, act.Day)
		return next

	case UpdateDay:
		next := clone(s)
		for i, d := range next.Days {
			if d.ID == act.Day.ID {
				next.Days[i] = act.Day
				break
			}
		}
		return next

	case DeleteDay:
		next := clone(s)
		days := next.Days[:0:0]
		for _, d := range next.Days {
			if d.ID != act.DayID {
				days = append(days, d)
			}
		}
		next.Days = days
		return next

	case AddPlannedExercise:
		return updateDayExercises(s, act.DayID, func(exs []models.PlannedExercise) []models.PlannedExercise {
			return append(exs, act.Exercise)
		})

	case UpdatePlannedExercise:
		return updateDayExercises(s, act.DayID, func(exs []models.PlannedExercise) []models.PlannedExercise {
			for i, ex := range exs {
				if ex.ID == act.Exercise.ID {
					exs[i] = act.Exercise
					break
				}
			}
			return exs
		})

	case DeletePlannedExercise:
		return updateDayExercises(s, act.DayID, func(exs []models.PlannedExercise) []models.PlannedExercise {
			out := exs[:0:0]
			for _, ex := range exs {
				if ex.ID != act.ExerciseID {
					out = append(out, ex)
				}
			}
			return out
		})

	case LogExercise:
		return logExercise(s, act)

	case SetActiveExercise:
		next := clone(s)
		next.ActiveExercise = act.ExerciseID
		next.ActiveExecution = act.Execution
		return next

	case ClearActiveExercise:
		next := clone(s)
		next.ActiveExercise = ""
		next.ActiveExecution = nil
		return next

	case SaveExerciseProgress:
		next := clone(s)
		next.ExerciseProgress[act.ExerciseID] = act.Progress
		return next

	case ClearExerciseProgress:
		next := clone(s)
		delete(next.ExerciseProgress, act.ExerciseID)
		return next

	case MarkExerciseCompleted:
		next := clone(s)
		next.CompletedExercises[act.ExerciseID] = act.Info
		return next

	case ClearCompletedExercise:
		next := clone(s)
		delete(next.CompletedExercises, act.ExerciseID)
		return next

	case ClearAllCompleted:
		next := clone(s)
		next.CompletedExercises = map[string]models.CompletedExerciseInfo{}
		return next

	case DismissShareToast:
		next := clone(s)
		next.DismissedToasts[act.DayID] = true
		return next

	case ResetShareToast:
		next := clone(s)
		delete(next.DismissedToasts, act.DayID)
		return next

	case ArchiveDayRollover:
		next := clone(s)
		if len(s.CompletedExercises) > 0 || len(s.ExerciseProgress) > 0 {
			next.Archive = append(next.Archive, models.DailySnapshot{
				Date:       s.LastSeenDate,
				Completed:  s.CompletedExercises,
				Progress:   s.ExerciseProgress,
				ArchivedAt: act.Now,
			})
		}
		next.CompletedExercises = map[string]models.CompletedExerciseInfo{}
		next.ExerciseProgress = map[string]models.ExerciseProgress{}
		next.DismissedToasts = map[string]bool{}
		next.LastSeenDate = act.NewDate
		return next

	case LoadState:
		next := act.State
		next.EnsureMaps()
		return next
	}

	return s
}

// logExercise appends to the flat log and upserts the session entry.
// Replacing an existing entry for the same definition keeps the upsert
// idempotent per exercise per session; the flat log still grows by one
// per call.
func logExercise(s models.WorkoutState, act LogExercise) models.WorkoutState {
	next := clone(s)
	next.LoggedExercises = append(next.LoggedExercises, act.Logged)

	idx := -1
	for i, sess := range next.Sessions {
		if sess.Date == act.Date && sess.DayID == act.Logged.DayID {
			idx = i
			break
		}
	}

	if idx == -1 {
		next.Sessions = append(next.Sessions, models.WorkoutSession{
			ID:        act.SessionID,
			DayID:     act.Logged.DayID,
			Date:      act.Date,
			StartTime: act.Now,
			Exercises: []models.LoggedExercise{act.Logged},
		})
		idx = len(next.Sessions) - 1
	} else {
		sess := next.Sessions[idx]
		exercises := make([]models.LoggedExercise, len(sess.Exercises))
		copy(exercises, sess.Exercises)

		replaced := false
		for i, le := range exercises {
			if le.DefinitionID == act.Logged.DefinitionID {
				exercises[i] = act.Logged
				replaced = true
				break
			}
		}
		if !replaced {
			exercises = append(exercises, act.Logged)
		}
		sess.Exercises = exercises
		next.Sessions[idx] = sess
	}

	// Close the session once every planned exercise of the day has a
	// matching logged entry.
	sess := next.Sessions[idx]
	if sess.EndTime == nil && sessionCoversDay(next, sess) {
		t := act.Now
		sess.EndTime = &t
		next.Sessions[idx] = sess
	}

	return next
}

func sessionCoversDay(s models.WorkoutState, sess models.WorkoutSession) bool {
	var day *models.WorkoutDay
	for i := range s.Days {
		if s.Days[i].ID == sess.DayID {
			day = &s.Days[i]
			break
		}
	}
	if day == nil || len(day.Exercises) == 0 {
		return false
	}

	logged := map[string]bool{}
	for _, le := range sess.Exercises {
		logged[le.DefinitionID] = true
	}
	for _, planned := range day.Exercises {
		if !logged[planned.DefinitionID] {
			return false
		}
	}
	return true
}

func updateDayExercises(s models.WorkoutState, dayID string, fn func([]models.PlannedExercise) []models.PlannedExercise) models.WorkoutState {
	next := clone(s)
	for i, d := range next.Days {
		if d.ID != dayID {
			continue
		}
		exercises := make([]models.PlannedExercise, len(d.Exercises))
		copy(exercises, d.Exercises)
		d.Exercises = fn(exercises)
		next.Days[i] = d
		break
	}
	return next
}

// clone produces a state whose top-level slices and maps are fresh so
// the reducer can modify them without touching the input. Entity
// values are copied by value; cases that mutate nested slices make
// their own copies first.
func clone(s models.WorkoutState) models.WorkoutState {
	next := s

	next.Days = make([]models.WorkoutDay, len(s.Days))
	copy(next.Days, s.Days)

	next.Sessions = make([]models.WorkoutSession, len(s.Sessions))
	copy(next.Sessions, s.Sessions)

	next.LoggedExercises = make([]models.LoggedExercise, len(s.LoggedExercises))
	copy(next.LoggedExercises, s.LoggedExercises)

	next.Archive = make([]models.DailySnapshot, len(s.Archive))
	copy(next.Archive, s.Archive)

	next.ExerciseProgress = make(map[string]models.ExerciseProgress, len(s.ExerciseProgress))
	for k, v := range s.ExerciseProgress {
		next.ExerciseProgress[k] = v
	}

	next.CompletedExercises = make(map[string]models.CompletedExerciseInfo, len(s.CompletedExercises))
	for k, v := range s.CompletedExercises {
		next.CompletedExercises[k] = v
	}

	next.DismissedToasts = make(map[string]bool, len(s.DismissedToasts))
	for k, v := range s.DismissedToasts {
		next.DismissedToasts[k] = v
	}

	return next
}
