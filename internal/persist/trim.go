package persist

import (
	"sort"

	"github.com/pedrohrf/ironlog/internal/models"
)

// TrimLimits bounds the payload used by the quota-exhaustion retry.
type TrimLimits struct {
	MaxSessions int
	MaxLogged   int
}

// Trim returns a copy of the state reduced to the most recent sessions
// and logged exercises. Days (the user's templates) and the day-scoped
// dictionaries are preserved in full; only history is shed.
func Trim(state models.WorkoutState, limits TrimLimits) models.WorkoutState {
	trimmed := state

	if limits.MaxSessions > 0 && len(state.Sessions) > limits.MaxSessions {
		sessions := make([]models.WorkoutSession, len(state.Sessions))
		copy(sessions, state.Sessions)
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		})
		trimmed.Sessions = sessions[len(sessions)-limits.MaxSessions:]
	}

	if limits.MaxLogged > 0 && len(state.LoggedExercises) > limits.MaxLogged {
		logged := make([]models.LoggedExercise, len(state.LoggedExercises))
		copy(logged, state.LoggedExercises)
		sort.Slice(logged, func(i, j int) bool {
			return logged[i].LoggedAt.Before(logged[j].LoggedAt)
		})
		trimmed.LoggedExercises = logged[len(logged)-limits.MaxLogged:]
	}

	return trimmed
}
