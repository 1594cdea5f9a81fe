package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pedrohrf/ironlog/internal/catalog"
	"github.com/pedrohrf/ironlog/internal/config"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/persist"
	"github.com/pedrohrf/ironlog/internal/resttimer"
	"github.com/pedrohrf/ironlog/internal/store"
)

// Context carries the wired application into every command.
type Context struct {
	Config  *config.Config
	Store   *store.Store
	Saver   *persist.Saver
	Backend persist.Backend
	Catalog *catalog.Catalog
	Timers  *resttimer.Manager

	SnapshotPath string
	Debug        bool
}

// findDay resolves a day by ID or (case-insensitive) name.
func findDay(state models.WorkoutState, ref string) (models.WorkoutDay, error) {
	for _, d := range state.Days {
		if d.ID == ref || strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return models.WorkoutDay{}, fmt.Errorf("workout day not found: %s", ref)
}

// findPlanned resolves a planned exercise within a day by ID or name.
func findPlanned(day models.WorkoutDay, ref string) (models.PlannedExercise, error) {
	for _, ex := range day.Exercises {
		if ex.ID == ref || strings.EqualFold(ex.Name, ref) {
			return ex, nil
		}
	}
	return models.PlannedExercise{}, fmt.Errorf("exercise not found in day %q: %s", day.Name, ref)
}

// parseSets parses a "80x10,82.5x9" style list into weight/rep pairs.
func parseSets(s string) ([]models.SetInput, error) {
	var out []models.SetInput
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, "x", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid set %q (expected WEIGHTxREPS)", part)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", part, err)
		}
		reps, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid reps in %q: %w", part, err)
		}
		out = append(out, models.SetInput{Weight: weight, Reps: reps})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sets given")
	}
	return out, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
