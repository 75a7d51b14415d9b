// Package scheduler produces the two periodic signals that drive the engine:
// a one-second timer tick and the day-rollover poll. It never touches engine
// state itself; the consumer applies each signal on its own goroutine.
package scheduler

import (
	"context"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/logger"
)

type Kind int

const (
	Tick Kind = iota
	DayPoll
)

func (k Kind) String() string {
	switch k {
	case Tick:
		return "tick"
	case DayPoll:
		return "day-poll"
	}
	return "unknown"
}

type Signal struct {
	Kind Kind
	At   time.Time
}

type Scheduler struct {
	tickInterval time.Duration
	pollInterval time.Duration
}

func New() *Scheduler {
	return &Scheduler{
		tickInterval: constants.TickInterval,
		pollInterval: constants.DayPollInterval,
	}
}

// WithIntervals overrides the tick and poll periods. Non-positive values keep the default.
func (s *Scheduler) WithIntervals(tick, poll time.Duration) *Scheduler {
	if tick > 0 {
		s.tickInterval = tick
	}
	if poll > 0 {
		s.pollInterval = poll
	}
	return s
}

// Start emits signals until ctx is done, then closes the channel. A DayPoll
// is sent immediately so a consumer starting just after midnight resets
// without waiting a full poll period.
func (s *Scheduler) Start(ctx context.Context) <-chan Signal {
	out := make(chan Signal)
	go s.run(ctx, out)
	return out
}

func (s *Scheduler) run(ctx context.Context, out chan<- Signal) {
	defer close(out)

	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	poll := time.NewTicker(s.pollInterval)
	defer poll.Stop()

	logger.Debug("Scheduler started", "tick", s.tickInterval, "poll", s.pollInterval)

	if !send(ctx, out, Signal{Kind: DayPoll, At: time.Now()}) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Scheduler stopped")
			return
		case at := <-tick.C:
			if !send(ctx, out, Signal{Kind: Tick, At: at}) {
				return
			}
		case at := <-poll.C:
			if !send(ctx, out, Signal{Kind: DayPoll, At: at}) {
				return
			}
		}
	}
}

func send(ctx context.Context, out chan<- Signal, sig Signal) bool {
	select {
	case out <- sig:
		return true
	case <-ctx.Done():
		return false
	}
}
