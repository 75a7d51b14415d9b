package timers

import (
	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/validation"
)

type TimeCmd struct {
	Add TimeAddCmd `cmd:"" help:"Credit time spent away from the timer."`
}

type TimeAddCmd struct {
	Type    string `arg:"" help:"Activity: study, play or idle."`
	Minutes string `arg:"" help:"Minutes to add, e.g. 45 or 45m."`
}

func (c *TimeAddCmd) Run(ctx *cli.Context) error {
	a, err := models.ParseActivity(c.Type)
	if err != nil {
		return err
	}
	minutes := validation.ParseMinutes(c.Minutes)
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	events, err := e.AddManualTime(a, minutes)
	if err != nil {
		return err
	}
	if minutes <= 0 {
		ctx.Println("Nothing to add.")
		return nil
	}
	ctx.Printf("Added %s of %s. Today: %s.\n", engine.FormatDuration(int64(minutes)*60), a.Label(), engine.FormatDuration(e.Daily().Get(a)))
	ctx.Report(events)
	return nil
}
