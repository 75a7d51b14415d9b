package cli

import (
	"io"
	"os"

	"github.com/julianstephens/arise/internal/backup"
	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/scheduler"
	"github.com/julianstephens/arise/internal/storage"
	"github.com/julianstephens/arise/internal/utils"
)

type Context struct {
	Store      storage.Provider
	StoreURI   string
	Config     config.Config
	ConfigPath string
	Scheduler  *scheduler.Scheduler
	Notifier   *notifier.Notifier

	// Options seeds every engine this context loads. Location defaults to
	// the configured timezone.
	Options engine.Options

	Out io.Writer
	In  io.Reader

	engine *engine.Engine
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Engine loads the engine from the store on first use. Whatever happened
// while the app was closed (a day rollover) is reported right away; the
// onboarding prompt is left to the commands that show the profile.
func (c *Context) Engine() (*engine.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}
	e, events, err := c.load()
	if err != nil {
		return nil, err
	}
	c.engine = e

	var shown []engine.Event
	for _, ev := range events {
		if ev.Kind != engine.EventPlayerQualification {
			shown = append(shown, ev)
		}
	}
	c.Report(shown)
	return e, nil
}

func (c *Context) load() (*engine.Engine, []engine.Event, error) {
	opts := c.Options
	if opts.Location == nil {
		loc, err := utils.LoadLocation(c.Config.Timezone)
		if err != nil {
			return nil, nil, err
		}
		opts.Location = loc
	}
	e, events := engine.Load(c.Store, opts)
	return e, events, nil
}

// EngineFactory returns a loader that rereads the store and builds a fresh
// engine, for callers that notice another process changed it.
func (c *Context) EngineFactory() func() (*engine.Engine, []engine.Event, error) {
	return func() (*engine.Engine, []engine.Event, error) {
		if err := c.Store.Load(); err != nil {
			return nil, nil, err
		}
		e, events, err := c.load()
		if err != nil {
			return nil, nil, err
		}
		c.engine = e
		return e, events, nil
	}
}

// Reload drops the cached engine so the next Engine call rereads the store.
func (c *Context) Reload() { c.engine = nil }

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup || !backup.Supported(c.StoreURI) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
