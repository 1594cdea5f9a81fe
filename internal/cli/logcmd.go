package cli

import (
	"fmt"

	"github.com/pedrohrf/ironlog/internal/execution"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/store"
)

// LogCmd runs a whole exercise execution non-interactively: each given
// set is completed in order and the result finalized, going through the
// exact same machine the TUI drives.
type LogCmd struct {
	Day      string `arg:"" help:"Day ID or name."`
	Exercise string `arg:"" help:"Exercise ID or name."`
	Sets     string `arg:"" help:"Comma-separated sets as WEIGHTxREPS (e.g. \"80x10,82.5x9\")."`
	Redo     bool   `help:"Log again even if already completed today."`
}

func (c *LogCmd) Run(ctx *Context) error {
	state := ctx.Store.State()
	day, err := findDay(state, c.Day)
	if err != nil {
		return err
	}
	planned, err := findPlanned(day, c.Exercise)
	if err != nil {
		return err
	}

	if _, done := state.CompletedExercises[planned.ID]; done {
		if !c.Redo {
			return fmt.Errorf("%s is already completed today (use --redo to log again)", planned.Name)
		}
		ctx.Store.Dispatch(store.ClearCompletedExercise{ExerciseID: planned.ID})
	}
	if state.ActiveExercise != "" && state.ActiveExercise != planned.ID {
		return fmt.Errorf("another exercise is mid-execution; finish or cancel it first")
	}

	sets, err := parseSets(c.Sets)
	if err != nil {
		return err
	}

	m := executionFor(ctx, planned, day.ID)
	for _, set := range sets {
		if err := m.CompleteCurrentSet(set); err != nil {
			m.Cancel()
			return err
		}
		if m.Phase() == execution.PhaseFinalizing {
			break
		}
	}

	// Unfilled planned sets are recorded as skipped so the set count
	// stays honest.
	for m.Phase() == execution.PhaseSetInProgress {
		if err := m.SkipCurrentSet(); err != nil {
			m.Cancel()
			return err
		}
	}

	logged, err := m.Finalize()
	if err != nil {
		return err
	}

	pr := ""
	if logged.IsPersonalRecord {
		pr = "  ★ personal record"
	}
	fmt.Printf("Logged %s: %d sets, avg %d reps @ %skg, volume %.1f%s\n",
		logged.Name, logged.Sets, logged.Reps, formatWeight(logged.Weight), logged.Volume, pr)
	return nil
}

// executionFor resumes a crashed execution when a progress snapshot
// exists, otherwise starts fresh.
func executionFor(ctx *Context, planned models.PlannedExercise, dayID string) *execution.Machine {
	state := ctx.Store.State()
	if progress, ok := state.ExerciseProgress[planned.ID]; ok {
		return execution.Resume(progress, planned, ctx.Store, ctx.Timers)
	}
	return execution.New(planned, dayID, ctx.Store, ctx.Timers)
}
