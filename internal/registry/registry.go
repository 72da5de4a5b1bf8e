package registry

import (
	"fmt"
	"sync"

	"a11ybridge/pkg/logging"
)

const subsystem = "Registry"

// Registry is a concurrency-safe, ordered set of listener handles.
type Registry struct {
	mu       sync.Mutex
	handles  []*Handle
	presence map[*Handle]struct{}
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		presence: make(map[*Handle]struct{}),
	}
}

// Add registers h. It returns false if h is nil, has no callback, or is
// already registered.
func (r *Registry) Add(h *Handle) bool {
	if h == nil || h.callback == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presence[h]; exists {
		return false
	}
	r.presence[h] = struct{}{}
	r.handles = append(r.handles, h)

	logging.Debug(subsystem, "Added listener %s, total listeners: %d", h.id, len(r.handles))
	return true
}

// Remove unregisters h. It returns false if h was not registered.
func (r *Registry) Remove(h *Handle) bool {
	if h == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presence[h]; !exists {
		return false
	}
	delete(r.presence, h)
	for i, existing := range r.handles {
		if existing == h {
			r.handles = append(r.handles[:i], r.handles[i+1:]...)
			break
		}
	}

	logging.Debug(subsystem, "Removed listener %s, total listeners: %d", h.id, len(r.handles))
	return true
}

// ReplaceAll empties the registry and, if h is non-nil, registers h as the
// only listener. Dispatch observes either the old or the new membership.
func (r *Registry) ReplaceAll(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handles = nil
	r.presence = make(map[*Handle]struct{})
	if h != nil && h.callback != nil {
		r.presence[h] = struct{}{}
		r.handles = []*Handle{h}
	}

	logging.Debug(subsystem, "Replaced all listeners, total listeners: %d", len(r.handles))
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Snapshot returns a copy of the current membership in registration order.
func (r *Registry) Snapshot() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]*Handle, len(r.handles))
	copy(snapshot, r.handles)
	return snapshot
}

// Dispatch delivers an event to every listener registered when the call
// starts. It never panics and never returns a listener's failure.
func (r *Registry) Dispatch(packageName, className string, timestampMillis int64) {
	listeners := r.Snapshot()

	event := Event{
		PackageName: packageName,
		ClassName:   className,
		Timestamp:   timestampMillis,
	}

	logging.Debug(subsystem, "Dispatching %s/%s to %d listeners", packageName, className, len(listeners))

	for _, h := range listeners {
		if err := invoke(h, event); err != nil {
			logging.Error(subsystem, err, "Listener %s failed handling %s/%s", h.id, packageName, className)
		}
	}
}

func invoke(h *Handle, event Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in listener: %v", rec)
		}
	}()
	return h.callback(event)
}
