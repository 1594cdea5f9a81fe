package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pedrohrf/ironlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	model := tui.New(tui.Deps{
		Store:   ctx.Store,
		Catalog: ctx.Catalog,
		Timers:  ctx.Timers,
		Config:  ctx.Config,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
