package registry

import (
	"github.com/google/uuid"
)

// Event is a foreground window change delivered to listeners.
type Event struct {
	PackageName string `json:"packageName" yaml:"packageName"`
	ClassName   string `json:"className" yaml:"className"`
	// Timestamp is the capture time in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// Callback receives dispatched events. A returned error is logged and does
// not affect delivery to other listeners.
type Callback func(Event) error

// Handle is the identity of one listener registration.
type Handle struct {
	id       string
	callback Callback
}

// NewHandle wraps cb in a new, unique listener identity.
func NewHandle(cb Callback) *Handle {
	return &Handle{
		id:       uuid.NewString(),
		callback: cb,
	}
}

// ID returns the unique identifier of the handle.
func (h *Handle) ID() string {
	return h.id
}
