package bridge

import (
	"context"
	"errors"
	"sync"

	"a11ybridge/internal/registry"
	"a11ybridge/internal/resolver"
	"a11ybridge/pkg/logging"
)

const subsystem = "Bridge"

// Options configures a Bridge.
type Options struct {
	// PackageName is the owning application package. Required.
	PackageName string
	// Scanner reports declared accessibility services. Optional.
	Scanner resolver.Scanner
	// Settings reads the OS enabled-services string. Required.
	Settings resolver.SettingsReader
	// Clock stamps forwarded events. Defaults to wall-clock time.
	Clock Clock
}

// Bridge connects the OS accessibility callbacks to application listeners.
type Bridge struct {
	resolver *resolver.Resolver
	registry *registry.Registry
	settings resolver.SettingsReader
	clock    Clock
}

// New validates opts and returns a Bridge with no listeners and no
// configured service class.
func New(opts Options) (*Bridge, error) {
	if opts.PackageName == "" {
		return nil, errors.New("package name must not be empty")
	}
	if opts.Settings == nil {
		return nil, errors.New("settings reader must not be nil")
	}
	clock := opts.Clock
	if clock == nil {
		clock = wallClock{}
	}
	return &Bridge{
		resolver: resolver.New(opts.PackageName, opts.Scanner),
		registry: registry.New(),
		settings: opts.Settings,
		clock:    clock,
	}, nil
}

// Subscription is returned by AddListener and removes that listener.
type Subscription struct {
	bridge *Bridge
	handle *registry.Handle
	once   sync.Once
}

// ID returns the unique identifier of the underlying listener.
func (s *Subscription) ID() string {
	return s.handle.ID()
}

// Remove unregisters the listener. It returns false if the listener was
// already removed, including by SetListener.
func (s *Subscription) Remove() bool {
	removed := false
	s.once.Do(func() {
		removed = s.bridge.registry.Remove(s.handle)
		if removed {
			logging.Debug(subsystem, "Listener %s removed", s.handle.ID())
		}
	})
	return removed
}

// AddListener registers cb for foreground-change events.
func (b *Bridge) AddListener(cb registry.Callback) *Subscription {
	h := registry.NewHandle(cb)
	if !b.registry.Add(h) {
		logging.Warn(subsystem, "Listener %s not registered: nil callback", h.ID())
	}
	return &Subscription{bridge: b, handle: h}
}

// SetListener is the legacy single-listener API. It removes every listener,
// including those added with AddListener, and registers cb if it is non-nil.
func (b *Bridge) SetListener(cb registry.Callback) {
	if cb == nil {
		b.registry.ReplaceAll(nil)
		return
	}
	b.registry.ReplaceAll(registry.NewHandle(cb))
}

// ListenerCount returns the number of registered listeners.
func (b *Bridge) ListenerCount() int {
	return b.registry.Len()
}

// SetServiceClassName pins the service class checked by IsEnabled.
func (b *Bridge) SetServiceClassName(name string) {
	b.resolver.SetServiceClassName(name)
}

// ConfiguredClassName returns the class set by SetServiceClassName, if any.
func (b *Bridge) ConfiguredClassName() (string, bool) {
	return b.resolver.ConfiguredClassName()
}

// GetDetectedServices returns the service class names reported by the
// scanner, or an empty list if the scan fails.
func (b *Bridge) GetDetectedServices() []string {
	detected := b.resolver.DetectedServices()
	if detected == nil {
		return []string{}
	}
	return detected
}

// CandidateIdentifiers returns the identifiers IsEnabled would check.
func (b *Bridge) CandidateIdentifiers() []resolver.ServiceID {
	return b.resolver.ResolveCandidateIdentifiers()
}

// PackageName returns the owning application package.
func (b *Bridge) PackageName() string {
	return b.resolver.PackageName()
}

// IsEnabled reports whether any candidate service is enabled. It never
// fails; collaborator errors yield false.
func (b *Bridge) IsEnabled(ctx context.Context) bool {
	return b.resolver.IsEnabled(ctx, b.settings)
}

// EnabledServices returns the raw enabled-services string, for diagnostics.
// Reader panics are returned as errors.
func (b *Bridge) EnabledServices(ctx context.Context) (*string, error) {
	return resolver.ReadSettings(ctx, b.settings)
}

// Reset removes all listeners and the configured service class.
func (b *Bridge) Reset() {
	b.registry.ReplaceAll(nil)
	b.resolver.Reset()
}

// HandleAccessibilityEvent is called from the OS callback context. Window
// state changes with both names present are stamped and dispatched; all
// other events are dropped. It reports whether the event was dispatched.
func (b *Bridge) HandleAccessibilityEvent(ev AccessibilityEvent) bool {
	captured := b.clock.Now().UnixMilli()

	if ev.EventType != EventTypeWindowStateChanged {
		return false
	}
	if ev.PackageName == "" || ev.ClassName == "" {
		logging.Debug(subsystem, "Dropping window change with missing names: package=%q class=%q", ev.PackageName, ev.ClassName)
		return false
	}

	b.registry.Dispatch(ev.PackageName, ev.ClassName, captured)
	return true
}

// Run pumps events from source into HandleAccessibilityEvent until the
// source ends or ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, source EventSource) error {
	if source == nil {
		return errors.New("event source must not be nil")
	}
	err := source.Stream(ctx, func(ev AccessibilityEvent) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.HandleAccessibilityEvent(ev)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
