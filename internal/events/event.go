// Package events carries launcher diagnostics to pluggable sinks. Events
// are observability only: no launcher decision depends on whether a sink
// accepted one.
package events

import "time"

type Event struct {
	RunID   string    `json:"run_id"`
	Service string    `json:"service,omitempty"`
	Phase   string    `json:"phase"`
	Level   string    `json:"level"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

const (
	LevelInfo  = "info"
	LevelError = "error"
)
