package ui

import (
	"time"

	"scrollgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// frameMsg fires the pending animation frame callbacks
type frameMsg time.Time

// timerMsg fires one engine timer
type timerMsg struct {
	id uint64
}

// clearStatusMsg clears the status line message
type clearStatusMsg struct{}

// pagerDoneMsg is sent when the external pager exits
type pagerDoneMsg struct {
	err error
}
