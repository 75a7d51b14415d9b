package engine

import "errors"

// Every error below leaves engine state untouched. The messages double as
// the status line shown to the user.
var (
	ErrGateClosed        = errors.New("you need to complete a daily gate to arise a shadow")
	ErrNoEmptySlots      = errors.New("no empty shadow slots, purchase more in the shop")
	ErrInsufficientFunds = errors.New("insufficient currency")
	ErrMaxLevel          = errors.New("shadow is already at max level")
	ErrShadowNotFound    = errors.New("shadow not found")
	ErrQuestNotFound     = errors.New("quest not found")
	ErrInvalidActivity   = errors.New("unknown activity (expected study, play or idle)")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrTodoNotFound      = errors.New("todo not found")
	ErrTimerIdle         = errors.New("no timer is running")
)
