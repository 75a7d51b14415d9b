package models

import (
	"fmt"
	"strings"
)

type ActivityType string

const (
	ActivityStudy ActivityType = "study"
	ActivityPlay  ActivityType = "play"
	ActivityIdle  ActivityType = "idle"
)

// Activities lists every tracked activity in display order.
var Activities = []ActivityType{ActivityStudy, ActivityPlay, ActivityIdle}

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityStudy, ActivityPlay, ActivityIdle:
		return true
	}
	return false
}

func (a ActivityType) Label() string {
	switch a {
	case ActivityStudy:
		return "Study"
	case ActivityPlay:
		return "Play"
	case ActivityIdle:
		return "Idle"
	}
	return string(a)
}

func ParseActivity(s string) (ActivityType, error) {
	a := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown activity %q (expected study, play or idle)", s)
	}
	return a, nil
}

// Counters holds whole seconds per activity.
type Counters struct {
	Study int64 `json:"study"`
	Play  int64 `json:"play"`
	Idle  int64 `json:"idle"`
}

func (c Counters) Get(a ActivityType) int64 {
	switch a {
	case ActivityStudy:
		return c.Study
	case ActivityPlay:
		return c.Play
	case ActivityIdle:
		return c.Idle
	}
	return 0
}

func (c *Counters) Add(a ActivityType, seconds int64) {
	switch a {
	case ActivityStudy:
		c.Study += seconds
	case ActivityPlay:
		c.Play += seconds
	case ActivityIdle:
		c.Idle += seconds
	}
}

func (c Counters) Total() int64 {
	return c.Study + c.Play + c.Idle
}

// Sub returns c minus o, clamped at zero per activity.
func (c Counters) Sub(o Counters) Counters {
	clamp := func(v int64) int64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return Counters{
		Study: clamp(c.Study - o.Study),
		Play:  clamp(c.Play - o.Play),
		Idle:  clamp(c.Idle - o.Idle),
	}
}

func (c Counters) Plus(o Counters) Counters {
	return Counters{Study: c.Study + o.Study, Play: c.Play + o.Play, Idle: c.Idle + o.Idle}
}
