package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/store"
)

type ExerciseAddCmd struct {
	Day        string  `arg:"" help:"Day ID or name."`
	Definition string  `arg:"" help:"Catalog exercise ID (see 'ironlog catalog')."`
	Sets       int     `help:"Target sets." default:"3"`
	Reps       int     `help:"Target reps per set." default:"10"`
	Weight     float64 `help:"Target weight in kg." default:"0"`
	Rest       int     `help:"Rest between sets in seconds (0 = config default)."`
	NoAuto     bool    `help:"Do not auto-start the rest timer after a set."`
	Advanced   bool    `help:"Track RPE and notes per set."`
}

func (c *ExerciseAddCmd) Run(ctx *Context) error {
	day, err := findDay(ctx.Store.State(), c.Day)
	if err != nil {
		return err
	}
	if !ctx.Catalog.Has(c.Definition) {
		return fmt.Errorf("unknown catalog exercise: %s (try 'ironlog catalog')", c.Definition)
	}

	rest := c.Rest
	if rest <= 0 {
		rest = ctx.Config.Timer.DefaultRestSeconds
	}

	def := ctx.Catalog.Lookup(c.Definition)
	ex := models.PlannedExercise{
		ID:              uuid.New().String(),
		DefinitionID:    def.ID,
		Name:            def.Name,
		TargetSets:      c.Sets,
		TargetReps:      c.Reps,
		TargetWeight:    c.Weight,
		RestSeconds:     rest,
		AutoStartTimer:  !c.NoAuto,
		AdvancedMetrics: c.Advanced,
	}
	ctx.Store.Dispatch(store.AddPlannedExercise{DayID: day.ID, Exercise: ex})
	fmt.Printf("Added %s to %q: %dx%d @ %skg\n",
		ex.Name, day.Name, ex.TargetSets, ex.TargetReps, formatWeight(ex.TargetWeight))
	return nil
}

type ExerciseEditCmd struct {
	Day      string   `arg:"" help:"Day ID or name."`
	Exercise string   `arg:"" help:"Exercise ID or name."`
	Sets     *int     `help:"Target sets."`
	Reps     *int     `help:"Target reps per set."`
	Weight   *float64 `help:"Target weight in kg."`
	Rest     *int     `help:"Rest between sets in seconds."`
	Auto     *bool    `help:"Auto-start the rest timer."`
}

func (c *ExerciseEditCmd) Run(ctx *Context) error {
	day, err := findDay(ctx.Store.State(), c.Day)
	if err != nil {
		return err
	}
	ex, err := findPlanned(day, c.Exercise)
	if err != nil {
		return err
	}

	if c.Sets != nil {
		ex.TargetSets = *c.Sets
	}
	if c.Reps != nil {
		ex.TargetReps = *c.Reps
	}
	if c.Weight != nil {
		ex.TargetWeight = *c.Weight
	}
	if c.Rest != nil {
		ex.RestSeconds = *c.Rest
	}
	if c.Auto != nil {
		ex.AutoStartTimer = *c.Auto
	}

	ctx.Store.Dispatch(store.UpdatePlannedExercise{DayID: day.ID, Exercise: ex})
	fmt.Printf("Updated %s: %dx%d @ %skg (rest %ds)\n",
		ex.Name, ex.TargetSets, ex.TargetReps, formatWeight(ex.TargetWeight), ex.RestSeconds)
	return nil
}

type ExerciseDeleteCmd struct {
	Day      string `arg:"" help:"Day ID or name."`
	Exercise string `arg:"" help:"Exercise ID or name."`
}

func (c *ExerciseDeleteCmd) Run(ctx *Context) error {
	day, err := findDay(ctx.Store.State(), c.Day)
	if err != nil {
		return err
	}
	ex, err := findPlanned(day, c.Exercise)
	if err != nil {
		return err
	}
	ctx.Store.Dispatch(store.DeletePlannedExercise{DayID: day.ID, ExerciseID: ex.ID})
	fmt.Printf("Removed %s from %q\n", ex.Name, day.Name)
	return nil
}

type CatalogCmd struct {
	Query string `arg:"" optional:"" help:"Filter by name."`
}

func (c *CatalogCmd) Run(ctx *Context) error {
	defs := ctx.Catalog.Search(c.Query)
	if len(defs) == 0 {
		fmt.Println("No catalog exercises match.")
		return nil
	}
	for _, def := range defs {
		fmt.Printf("  %-28s %s (%s, %s)\n", def.ID, def.Name, def.PrimaryMuscleGroup, def.Equipment)
	}
	return nil
}
