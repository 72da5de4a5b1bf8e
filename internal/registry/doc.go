// Package registry fans a single foreground-change event out to any number of
// independently registered listeners.
//
// Each registration is identified by a *Handle. Adding the same handle twice
// and removing an absent handle are no-ops reported through the boolean
// return value.
//
// Dispatch follows a snapshot-then-notify pattern: membership is copied under
// the registry lock and callbacks run on the copy with the lock released, so a
// slow listener never blocks registration and a listener may add or remove
// handles from inside its own callback. Listeners added during a dispatch are
// not notified for that event; listeners removed during a dispatch still are.
//
// Every callback invocation has its own recover boundary. A callback that
// returns an error or panics is logged and the remaining listeners are still
// notified.
package registry
