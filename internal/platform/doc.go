// Package platform provides host-side implementations of the collaborators a
// Bridge calls into: readers for the enabled-services setting, a fixed
// service scanner, a JSON-lines accessibility event source, and a file
// watcher that re-evaluates the enabled state when the setting changes.
package platform
