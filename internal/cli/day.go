package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/store"
)

type DayAddCmd struct {
	Name string `arg:"" help:"Display name for the workout day (e.g. \"Push A\")."`
}

func (c *DayAddCmd) Run(ctx *Context) error {
	day := models.WorkoutDay{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Exercises: []models.PlannedExercise{},
		CreatedAt: time.Now(),
	}
	ctx.Store.Dispatch(store.AddDay{Day: day})
	fmt.Printf("Added workout day %q (%s)\n", day.Name, day.ID)
	return nil
}

type DayListCmd struct{}

func (c *DayListCmd) Run(ctx *Context) error {
	state := ctx.Store.State()
	if len(state.Days) == 0 {
		fmt.Println("No workout days yet. Add one with 'ironlog day add'.")
		return nil
	}

	fmt.Println("Workout days:")
	for _, day := range state.Days {
		done := 0
		for _, ex := range day.Exercises {
			if _, ok := state.CompletedExercises[ex.ID]; ok {
				done++
			}
		}
		fmt.Printf("  %s - %d exercises (%d done today)\n", day.Name, len(day.Exercises), done)
	}
	return nil
}

type DayShowCmd struct {
	Day string `arg:"" help:"Day ID or name."`
}

func (c *DayShowCmd) Run(ctx *Context) error {
	state := ctx.Store.State()
	day, err := findDay(state, c.Day)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", day.Name, day.ID)
	if len(day.Exercises) == 0 {
		fmt.Println("  no exercises planned")
		return nil
	}
	for _, ex := range day.Exercises {
		status := " "
		if _, ok := state.CompletedExercises[ex.ID]; ok {
			status = "✓"
		}
		fmt.Printf("  [%s] %s - %dx%d @ %skg (rest %ds)\n",
			status, ex.Name, ex.TargetSets, ex.TargetReps, formatWeight(ex.TargetWeight), ex.RestSeconds)
	}
	return nil
}

type DayDeleteCmd struct {
	Day string `arg:"" help:"Day ID or name."`
}

func (c *DayDeleteCmd) Run(ctx *Context) error {
	day, err := findDay(ctx.Store.State(), c.Day)
	if err != nil {
		return err
	}
	ctx.Store.Dispatch(store.DeleteDay{DayID: day.ID})
	fmt.Printf("Deleted workout day %q\n", day.Name)
	return nil
}
