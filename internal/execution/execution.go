// Package execution drives one planned exercise through its sets and
// finalizes it into a durable logged record. Only one machine may be
// active at a time; the store's single active-exercise slot enforces
// that by construction.
package execution

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/records"
	"github.com/pedrohrf/ironlog/internal/resttimer"
	"github.com/pedrohrf/ironlog/internal/store"
)

// Phase is the machine's coarse position in its lifecycle.
type Phase int

const (
	PhaseSetInProgress Phase = iota
	PhaseFinalizing
	PhaseDone
	PhaseCancelled
)

// Machine runs a single exercise execution. It holds only transient,
// non-authoritative copies of state; everything durable is reconciled
// back into the store.
type Machine struct {
	st     *store.Store
	timers *resttimer.Manager

	planned models.PlannedExercise
	dayID   string

	exec    models.ExerciseExecution
	current models.SetInput
	phase   Phase

	// OnExerciseComplete is called after Finalize with the logged
	// record, for the completion notification.
	OnExerciseComplete func(models.LoggedExercise)
	// OnReturnToExercise is handed to the rest timer so its indicator
	// can navigate back here.
	OnReturnToExercise func()

	now func() time.Time
}

// New builds a fresh machine from the planned exercise's defaults and
// claims the store's active-exercise slot.
func New(planned models.PlannedExercise, dayID string, st *store.Store, timers *resttimer.Manager) *Machine {
	m := &Machine{
		st:      st,
		timers:  timers,
		planned: planned,
		dayID:   dayID,
		now:     time.Now,
	}
	m.exec = models.ExerciseExecution{
		ID:            uuid.New().String(),
		ExerciseID:    planned.ID,
		DefinitionID:  planned.DefinitionID,
		DayID:         dayID,
		Name:          planned.Name,
		CurrentSet:    1,
		TotalSets:     planned.TargetSets,
		CompletedSets: []models.ExecutedSet{},
		TimerConfig: models.TimerConfig{
			DefaultRestSeconds: planned.RestSeconds,
			AutoStart:          planned.AutoStartTimer,
			NotifyOnComplete:   true,
		},
		StartedAt: m.now(),
	}
	m.current = m.defaultSetInput()
	m.publishActive()
	return m
}

// Resume rebuilds a machine from a persisted progress snapshot. This
// is the crash-recovery path: the snapshot survives unclean process
// termination and reproduces the execution exactly.
func Resume(progress models.ExerciseProgress, planned models.PlannedExercise, st *store.Store, timers *resttimer.Manager) *Machine {
	m := &Machine{
		st:      st,
		timers:  timers,
		planned: planned,
		dayID:   progress.Execution.DayID,
		exec:    progress.Execution,
		current: progress.CurrentSet,
		now:     time.Now,
	}
	if m.exec.CompletedSets == nil {
		m.exec.CompletedSets = []models.ExecutedSet{}
	}
	if m.exec.CurrentSet > m.exec.TotalSets {
		m.phase = PhaseFinalizing
	}
	m.publishActive()
	logger.Info("resumed exercise execution",
		"exercise", m.exec.Name, "set", m.exec.CurrentSet)
	return m
}

// Execution returns the transient execution record.
func (m *Machine) Execution() models.ExerciseExecution { return m.exec }

// CurrentInput returns the working data for the set in progress.
func (m *Machine) CurrentInput() models.SetInput { return m.current }

// Phase returns the machine's lifecycle phase.
func (m *Machine) Phase() Phase { return m.phase }

// UpdateCurrentSet replaces the working-set fields. Any value that
// differs from the plan's defaults is persisted through the store so a
// killed process loses at most the last few seconds of input.
func (m *Machine) UpdateCurrentSet(input models.SetInput) {
	m.current = input
	if input != m.defaultSetInput() {
		m.saveProgress()
	}
}

// CompleteCurrentSet records the working set, consults the record
// detector against history, and advances. If sets remain and the timer
// is configured to auto-start, the rest countdown begins immediately.
func (m *Machine) CompleteCurrentSet(input models.SetInput) error {
	if m.phase != PhaseSetInProgress {
		return fmt.Errorf("no set in progress")
	}
	// The UI disables completion for zero reps; this guard is the
	// input boundary for non-UI callers.
	if input.Reps <= 0 {
		return fmt.Errorf("cannot complete a set with zero reps")
	}

	prev := records.HistoryMaxima(m.st.State().LoggedExercises, m.exec.DefinitionID)
	verdict := records.CheckSet(input.Weight, input.Reps, prev)

	m.appendSet(models.ExecutedSet{
		Reps:             input.Reps,
		Weight:           input.Weight,
		RPE:              input.RPE,
		Notes:            input.Notes,
		RestSeconds:      m.exec.TimerConfig.DefaultRestSeconds,
		IsPersonalRecord: verdict.Any(),
		CompletedAt:      m.now(),
	})

	if m.phase == PhaseSetInProgress && m.exec.TimerConfig.AutoStart {
		m.startRestTimer()
	}
	return nil
}

// SkipCurrentSet records a zero-valued set. Skips never trigger a
// record check or the rest timer.
func (m *Machine) SkipCurrentSet() error {
	if m.phase != PhaseSetInProgress {
		return fmt.Errorf("no set in progress")
	}
	m.appendSet(models.ExecutedSet{
		Notes:       models.SkippedSetNote,
		CompletedAt: m.now(),
	})
	return nil
}

// appendSet does the shared bookkeeping for complete and skip: append,
// advance, reset the working fields, persist, and transition to
// finalizing after the last set. The invariant
// len(CompletedSets) == CurrentSet-1 holds on exit.
func (m *Machine) appendSet(set models.ExecutedSet) {
	m.exec.CompletedSets = append(m.exec.CompletedSets, set)
	m.exec.CurrentSet++
	m.current = m.defaultSetInput()

	if m.exec.CurrentSet > m.exec.TotalSets {
		m.phase = PhaseFinalizing
	}
	m.saveProgress()
	m.publishActive()
}

// Finalize computes the aggregate logged record, publishes it, clears
// the progress snapshot and the active slot, and emits the completion
// notification.
func (m *Machine) Finalize() (models.LoggedExercise, error) {
	if m.phase != PhaseFinalizing {
		return models.LoggedExercise{}, fmt.Errorf("execution is not ready to finalize")
	}

	now := m.now()
	logged := Aggregate(m.exec, now)

	m.st.Dispatch(store.LogExercise{
		Logged:    logged,
		Date:      now.Format("2006-01-02"),
		SessionID: uuid.New().String(),
		Now:       now,
	})
	m.st.Dispatch(store.MarkExerciseCompleted{
		ExerciseID: m.exec.ExerciseID,
		Info:       models.CompletedExerciseInfo{Logged: logged, CompletedAt: now},
	})
	m.st.Dispatch(store.ClearExerciseProgress{ExerciseID: m.exec.ExerciseID})
	m.st.Dispatch(store.ClearActiveExercise{})

	m.phase = PhaseDone
	logger.Info("exercise finalized",
		"exercise", logged.Name, "sets", logged.Sets, "volume", logged.Volume)

	if m.OnExerciseComplete != nil {
		m.OnExerciseComplete(logged)
	}
	return logged, nil
}

// Cancel discards the execution without creating a logged record. The
// caller is responsible for user confirmation before invoking it.
func (m *Machine) Cancel() {
	if m.phase == PhaseDone || m.phase == PhaseCancelled {
		return
	}
	m.st.Dispatch(store.ClearExerciseProgress{ExerciseID: m.exec.ExerciseID})
	m.st.Dispatch(store.ClearActiveExercise{})
	m.phase = PhaseCancelled
	logger.Info("exercise execution cancelled", "exercise", m.exec.Name)
}

func (m *Machine) startRestTimer() {
	m.timers.Start(resttimer.Descriptor{
		ExerciseID:   m.exec.ExerciseID,
		ExerciseName: m.exec.Name,
		CurrentSet:   m.exec.CurrentSet,
		TotalSets:    m.exec.TotalSets,
		RestSeconds:  m.exec.TimerConfig.DefaultRestSeconds,
		OnComplete: func() {
			logger.Debug("rest complete", "exercise", m.exec.Name)
		},
		OnReturn: m.OnReturnToExercise,
	})
}

func (m *Machine) saveProgress() {
	m.st.Dispatch(store.SaveExerciseProgress{
		ExerciseID: m.exec.ExerciseID,
		Progress: models.ExerciseProgress{
			Execution:  m.exec,
			CurrentSet: m.current,
			SavedAt:    m.now(),
		},
	})
}

func (m *Machine) publishActive() {
	exec := m.exec
	m.st.Dispatch(store.SetActiveExercise{
		ExerciseID: m.exec.ExerciseID,
		Execution:  &exec,
	})
}

func (m *Machine) defaultSetInput() models.SetInput {
	return models.SetInput{
		Reps:   m.planned.TargetReps,
		Weight: m.planned.TargetWeight,
	}
}

// Aggregate folds the executed sets into the durable record. Reps and
// Weight are per-set averages rounded to integer and one decimal.
//
// Skipped sets contribute zeros to both averages, which depresses them
// whenever a set is skipped. That matches the aggregates historical
// data was computed with, so it is preserved as-is.
func Aggregate(exec models.ExerciseExecution, now time.Time) models.LoggedExercise {
	var repsSum, volume, weightSum float64
	anyRecord := false
	for _, set := range exec.CompletedSets {
		repsSum += float64(set.Reps)
		weightSum += set.Weight
		volume += set.Weight * float64(set.Reps)
		if set.IsPersonalRecord {
			anyRecord = true
		}
	}

	n := float64(len(exec.CompletedSets))
	var avgReps int
	var avgWeight float64
	if n > 0 {
		avgReps = int(math.Round(repsSum / n))
		avgWeight = math.Round(weightSum/n*10) / 10
	}

	sets := make([]models.ExecutedSet, len(exec.CompletedSets))
	copy(sets, exec.CompletedSets)

	return models.LoggedExercise{
		ID:               uuid.New().String(),
		DefinitionID:     exec.DefinitionID,
		DayID:            exec.DayID,
		Name:             exec.Name,
		Sets:             len(sets),
		Reps:             avgReps,
		Weight:           avgWeight,
		Volume:           volume,
		IsPersonalRecord: anyRecord,
		CompletedSets:    sets,
		LoggedAt:         now,
	}
}
