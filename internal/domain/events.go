package domain

import "scrollgrip/internal/host"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScrollbarInitialized EventType = "ScrollbarInitialized"
	EventScrollbarUpdated     EventType = "ScrollbarUpdated"
	EventDragStarted          EventType = "DragStarted"
	EventDragEnded            EventType = "DragEnded"
	EventHoverChanged         EventType = "HoverChanged"
	EventTrackStepped         EventType = "TrackStepped"
	EventDirectionChanged     EventType = "DirectionChanged"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AfterInitEvent is emitted once, after the first real measurement
type AfterInitEvent struct {
	ScrollbarID string
	States      map[host.Axis]AxisState
}

func (e AfterInitEvent) Type() EventType { return EventScrollbarInitialized }

// AfterUpdateEvent is emitted on every later geometry change
type AfterUpdateEvent struct {
	ScrollbarID string
	Cause       InitCause
	States      map[host.Axis]AxisState
}

func (e AfterUpdateEvent) Type() EventType { return EventScrollbarUpdated }

// DragStartedEvent is emitted when a thumb drag begins
type DragStartedEvent struct {
	ScrollbarID string
	Axis        host.Axis
}

func (e DragStartedEvent) Type() EventType { return EventDragStarted }

// DragEndedEvent is emitted when a thumb drag is released or torn down
type DragEndedEvent struct {
	ScrollbarID string
	Axis        host.Axis
}

func (e DragEndedEvent) Type() EventType { return EventDragEnded }

// HoverChangedEvent is emitted when the pointer enters or leaves a track
type HoverChangedEvent struct {
	ScrollbarID string
	Axis        host.Axis
	Hovered     bool
}

func (e HoverChangedEvent) Type() EventType { return EventHoverChanged }

// TrackSteppedEvent is emitted for every step of a track press-and-hold
type TrackSteppedEvent struct {
	ScrollbarID string
	Axis        host.Axis
	Forward     bool
	Target      float64
}

func (e TrackSteppedEvent) Type() EventType { return EventTrackStepped }

// DirectionChangedEvent is emitted when the host's text direction changes
type DirectionChangedEvent struct {
	ScrollbarID string
	Direction   host.Direction
}

func (e DirectionChangedEvent) Type() EventType { return EventDirectionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
