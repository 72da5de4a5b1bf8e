// Package bridge is the application-facing surface of a11ybridge.
//
// A Bridge owns one service resolver and one listener registry. It exposes
// the subscriber API used by the host runtime (AddListener, SetListener,
// SetServiceClassName, GetDetectedServices, IsEnabled) and receives raw
// accessibility events from the OS through HandleAccessibilityEvent.
//
// Only window-state-changed events are forwarded. Events missing a package
// or class name are dropped, and forwarded events are stamped with the
// capture time before they are dispatched.
//
// Bridges are independent: tests construct one per case instead of sharing
// process-wide state.
package bridge
