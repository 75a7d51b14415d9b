// Package clitest builds command contexts over an in-memory store with a
// fixed clock, for command tests.
package clitest

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/scheduler"
	"github.com/julianstephens/arise/internal/storage"
)

// Start is the instant every test clock begins at.
var Start = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type Clock struct{ t time.Time }

func (c *Clock) Now() time.Time          { return c.t }
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Rand replays a fixed sequence of draws, then repeats the last one.
type Rand struct {
	Values []float64
	i      int
}

func (r *Rand) Float64() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[min(r.i, len(r.Values)-1)]
	r.i++
	return v
}

type Env struct {
	Ctx   *cli.Context
	Out   *bytes.Buffer
	Store storage.Provider
	Clock *Clock
	Rand  *Rand
}

// New returns an environment over a loaded in-memory store.
func New(t *testing.T) *Env {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Load(); err != nil {
		t.Fatalf("load memory store: %v", err)
	}
	return NewWithStore(t, store, "memory:")
}

// NewWithStore wires a context around an already loaded store.
func NewWithStore(t *testing.T, store storage.Provider, uri string) *Env {
	t.Helper()
	clock := &Clock{t: Start}
	rnd := &Rand{Values: []float64{0}}
	ids := 0
	out := &bytes.Buffer{}

	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.AutoBackup = false
	cfg.NotificationsEnabled = false

	ctx := &cli.Context{
		Store:     store,
		StoreURI:  uri,
		Config:    cfg,
		Scheduler: scheduler.New(),
		Notifier:  notifier.New(false),
		Options: engine.Options{
			Location: time.UTC,
			Now:      clock.Now,
			Rand:     rnd,
			NewID: func() string {
				ids++
				return "id-" + strconv.Itoa(ids)
			},
		},
		Out: out,
		In:  strings.NewReader(""),
	}
	t.Cleanup(func() { _ = store.Close() })
	return &Env{Ctx: ctx, Out: out, Store: store, Clock: clock, Rand: rnd}
}

// Input replaces what the commands read from stdin.
func (e *Env) Input(s string) { e.Ctx.In = strings.NewReader(s) }

// Engine loads (or returns the cached) engine, failing the test on error.
func (e *Env) Engine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := e.Ctx.Engine()
	if err != nil {
		t.Fatalf("load engine: %v", err)
	}
	return eng
}

// Set writes a raw key before the engine is loaded.
func (e *Env) Set(t *testing.T, key, value string) {
	t.Helper()
	if err := e.Store.Set(key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func (e *Env) Get(t *testing.T, key string) string {
	t.Helper()
	v, _, err := e.Store.Get(key)
	if err != nil {
		t.Fatalf("get %s: %v", key, err)
	}
	return v
}

// Output returns and clears everything written so far.
func (e *Env) Output() string {
	s := e.Out.String()
	e.Out.Reset()
	return s
}
