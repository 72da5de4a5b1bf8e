package bridge

import (
	"context"
	"time"
)

// EventType mirrors the Android AccessibilityEvent type constants.
type EventType int

const (
	// EventTypeWindowStateChanged is TYPE_WINDOW_STATE_CHANGED, raised when
	// the foreground window changes.
	EventTypeWindowStateChanged EventType = 32

	// EventTypeWindowContentChanged is TYPE_WINDOW_CONTENT_CHANGED. It is
	// accepted on input and ignored.
	EventTypeWindowContentChanged EventType = 2048
)

// String returns the Android constant name for known types.
func (t EventType) String() string {
	switch t {
	case EventTypeWindowStateChanged:
		return "TYPE_WINDOW_STATE_CHANGED"
	case EventTypeWindowContentChanged:
		return "TYPE_WINDOW_CONTENT_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// AccessibilityEvent is the raw event delivered by the OS callback.
type AccessibilityEvent struct {
	EventType   EventType `json:"eventType"`
	PackageName string    `json:"packageName"`
	ClassName   string    `json:"className"`
}

// EventSource streams raw accessibility events until it is exhausted or ctx
// is cancelled. Returning a non-nil error from emit stops the stream.
type EventSource interface {
	Stream(ctx context.Context, emit func(AccessibilityEvent) error) error
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(ctx context.Context, emit func(AccessibilityEvent) error) error

// Stream calls the underlying function.
func (f EventSourceFunc) Stream(ctx context.Context, emit func(AccessibilityEvent) error) error {
	return f(ctx, emit)
}

// Clock supplies capture timestamps.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }
