package cli

import (
	"fmt"

	"github.com/pedrohrf/ironlog/internal/analytics"
	"github.com/pedrohrf/ironlog/internal/records"
)

type RecordsCmd struct {
	Exercise string `arg:"" optional:"" help:"Catalog exercise ID to show the 1RM trend for."`
}

func (c *RecordsCmd) Run(ctx *Context) error {
	state := ctx.Store.State()

	if c.Exercise != "" {
		def := ctx.Catalog.Lookup(c.Exercise)
		points := analytics.OneRepMaxTrend(state.LoggedExercises, c.Exercise)
		if len(points) == 0 {
			fmt.Printf("No history for %s yet.\n", def.Name)
			return nil
		}
		fmt.Printf("Estimated 1RM trend for %s:\n", def.Name)
		for _, p := range points {
			fmt.Printf("  %s  %.1f kg\n", p.Date.Format("2006-01-02"), p.Value)
		}
		return nil
	}

	best := records.Summary(state.LoggedExercises)
	if len(best) == 0 {
		fmt.Println("No records yet - go lift something.")
		return nil
	}

	fmt.Printf("%d performances carry a personal-record flag.\n\n", analytics.RecordCount(state.LoggedExercises))
	fmt.Println("Standing records:")
	for _, b := range best {
		fmt.Printf("  %-32s max %skg / volume %.1f (%dx)\n",
			b.Name, formatWeight(b.MaxWeight), b.MaxVolume, b.Occurrences)
	}
	return nil
}
