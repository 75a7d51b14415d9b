package models

import "time"

// TimerSession is the persisted state of a running timer.
type TimerSession struct {
	Active   ActivityType `json:"type"`
	Elapsed  int64        `json:"elapsed"`
	LastTick time.Time    `json:"lastTick"`
}
