package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	e, err := ctx.Engine()
	if err != nil {
		return err
	}

	m := tui.NewModel(tui.Options{
		Engine:    e,
		Store:     ctx.Store,
		StoreURI:  ctx.StoreURI,
		Scheduler: ctx.Scheduler,
		Notifier:  ctx.Notifier,
		Reload:    ctx.EngineFactory(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited: %w", err)
	}
	return nil
}
