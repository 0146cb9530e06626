package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventBuild     EventType = "build"
	EventTickStart EventType = "tick_start"
	EventTickEnd   EventType = "tick_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// BuildEvent is emitted after a tree has been (re)built from a spec.
type BuildEvent struct {
	EventBase
	Tree     string   `json:"tree"`
	Nodes    int      `json:"nodes"`
	Warnings []string `json:"warnings,omitempty"`
}

// TickEvent brackets one evaluation pass of a tree.
// Status and Duration are only meaningful on EventTickEnd.
type TickEvent struct {
	EventBase
	Tree     string        `json:"tree"`
	Tick     uint64        `json:"tick"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnBuild     func(context.Context, *BuildEvent)
	OnTickStart func(context.Context, *TickEvent)
	OnTickEnd   func(context.Context, *TickEvent)
}
