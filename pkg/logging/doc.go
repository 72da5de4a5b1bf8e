// Package logging provides subsystem-tagged structured logging for a11ybridge.
//
// The package wraps Go's standard slog package so that every component logs
// through the same handler, with a "subsystem" attribute identifying the
// source of each entry.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bridge", "Listener %s registered", id)
//	logging.Warn("Resolver", "Service scan failed: %v", err)
//	logging.Error("Registry", err, "Listener %s failed", id)
//
// # Subsystems
//
//   - Resolver: service identifier resolution and enabled-state checks
//   - Registry: listener registration and event dispatch
//   - Bridge: upstream event filtering and the subscriber API
//   - Platform: settings readers, event sources and file watching
//   - ConfigLoader: configuration loading
//
// When InitForCLI has not been called (the package is embedded as a library),
// warnings and errors are still written to stderr; debug and info entries are
// discarded.
//
// All functions are safe for concurrent use.
package logging
