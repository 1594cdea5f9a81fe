package cli

import (
	"fmt"

	"github.com/pedrohrf/ironlog/internal/backup"
	"github.com/pedrohrf/ironlog/internal/store"
)

type ExportCmd struct {
	Path string `arg:"" help:"Destination file." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	state := ctx.Store.State()
	if err := backup.Export(state, c.Path); err != nil {
		return err
	}
	fmt.Printf("Exported %d days, %d sessions, %d logged exercises to %s\n",
		len(state.Days), len(state.Sessions), len(state.LoggedExercises), c.Path)
	return nil
}

type ImportCmd struct {
	Path  string `arg:"" help:"Backup file to import." type:"path"`
	Force bool   `help:"Replace current data without prompting."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	state, err := backup.Import(c.Path)
	if err != nil {
		return err
	}

	if !c.Force {
		cur := ctx.Store.State()
		if len(cur.Days) > 0 || len(cur.LoggedExercises) > 0 {
			return fmt.Errorf("current data is not empty; rerun with --force to replace it")
		}
	}

	ctx.Store.Dispatch(store.LoadState{State: state})
	fmt.Printf("Imported %d days, %d sessions, %d logged exercises\n",
		len(state.Days), len(state.Sessions), len(state.LoggedExercises))
	return nil
}
