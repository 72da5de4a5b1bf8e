// Package resolver decides which accessibility service identifiers belong to
// the host application and tests them against the enabled-services string
// reported by Android.
//
// A service identifier has the form "<package>/<class>". The candidate set is
// chosen by strict priority: an explicitly configured class name, then the
// class names reported by a Scanner, then the fixed fallback
// "<package>/<package>.MyAccessibilityService". Only one rule applies per call.
//
// Membership is tested by splitting the enabled-services string on ':' and
// comparing trimmed tokens for exact, case-sensitive equality. Substring
// matches never count.
//
// Collaborator failures (a Scanner or SettingsReader that errors or panics)
// are logged and treated as empty results; they never reach the caller.
package resolver
