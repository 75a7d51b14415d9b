package timers

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/scheduler"
)

type TimerCmd struct {
	Start  TimerStartCmd  `cmd:"" help:"Start a timer (starting the running timer stops it)."`
	Pause  TimerPauseCmd  `cmd:"" help:"Pause the running timer, crediting its time."`
	Stop   TimerStopCmd   `cmd:"" help:"Stop the running timer, crediting its time."`
	Reset  TimerResetCmd  `cmd:"" help:"Discard the running timer without crediting it."`
	Status TimerStatusCmd `cmd:"" help:"Show the running timer and today's totals." default:"1"`
	Watch  TimerWatchCmd  `cmd:"" help:"Run the timer in the foreground until interrupted."`
}

type TimerStartCmd struct {
	Type string `arg:"" help:"Activity to time: study, play or idle."`
}

func (c *TimerStartCmd) Run(ctx *cli.Context) error {
	a, err := models.ParseActivity(c.Type)
	if err != nil {
		return err
	}
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	before, _ := e.Timer()
	events, err := e.Start(a)
	if err != nil {
		return err
	}

	active, _ := e.Timer()
	switch {
	case active == "":
		ctx.Printf("%s timer stopped.\n", a.Label())
	case before != "" && before != active:
		ctx.Printf("Switched from %s to %s.\n", before.Label(), active.Label())
	default:
		ctx.Printf("%s timer started.\n", active.Label())
	}
	ctx.Report(events)
	return nil
}

type TimerPauseCmd struct{}

func (c *TimerPauseCmd) Run(ctx *cli.Context) error {
	return flush(ctx, "paused", (*engine.Engine).Pause)
}

type TimerStopCmd struct{}

func (c *TimerStopCmd) Run(ctx *cli.Context) error {
	return flush(ctx, "stopped", (*engine.Engine).Stop)
}

func flush(ctx *cli.Context, verb string, op func(*engine.Engine) ([]engine.Event, error)) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	active, _ := e.Timer()
	before := e.Daily().Get(active)
	events, err := op(e)
	if err != nil {
		return err
	}
	credited := e.Daily().Get(active) - before
	ctx.Printf("%s timer %s. Credited %s.\n", active.Label(), verb, engine.FormatDuration(credited))
	ctx.Report(events)
	return nil
}

type TimerResetCmd struct{}

func (c *TimerResetCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	active, elapsed := e.Timer()
	if active == "" && elapsed == 0 {
		return engine.ErrTimerIdle
	}
	e.Reset()
	ctx.Printf("Discarded %s of %s.\n", engine.FormatDuration(elapsed), active.Label())
	return nil
}

type TimerStatusCmd struct{}

func (c *TimerStatusCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	active, elapsed := e.Timer()
	if active == "" {
		ctx.Println("No timer running.")
	} else {
		ctx.Printf("%s timer running: %s\n", active.Label(), engine.FormatDuration(elapsed))
	}

	daily := e.Daily()
	table := ctx.Table("ACTIVITY", "TODAY")
	for _, a := range models.Activities {
		table.AddRow(a.Label(), engine.FormatDuration(daily.Get(a)))
	}
	ctx.PrintTable(table)
	return nil
}

type TimerWatchCmd struct {
	Type string        `arg:"" optional:"" help:"Activity to start if no timer is running."`
	For  time.Duration `help:"Stop watching after this long (0 watches until interrupted)."`
	Keep bool          `help:"Leave the timer running on exit instead of crediting it."`
}

func (c *TimerWatchCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	if active, _ := e.Timer(); active == "" {
		if c.Type == "" {
			return engine.ErrTimerIdle
		}
		a, err := models.ParseActivity(c.Type)
		if err != nil {
			return err
		}
		if _, err := e.Start(a); err != nil {
			return err
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.For)
		defer cancel()
	}

	sched := ctx.Scheduler
	if sched == nil {
		sched = scheduler.New()
	}
	for sig := range sched.Start(runCtx) {
		switch sig.Kind {
		case scheduler.Tick:
			e.Tick()
			active, elapsed := e.Timer()
			ctx.Printf("\r%s %s ", active.Label(), engine.FormatDuration(elapsed))
		case scheduler.DayPoll:
			ctx.Report(e.CheckDay())
		}
	}
	ctx.Println()

	if c.Keep {
		return nil
	}
	return flush(ctx, "stopped", (*engine.Engine).Stop)
}
