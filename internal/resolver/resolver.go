package resolver

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"a11ybridge/pkg/logging"
)

// FallbackClassSuffix is appended to the package name to form the class
// name used when nothing is configured or detected.
const FallbackClassSuffix = ".MyAccessibilityService"

const subsystem = "Resolver"

// Resolver computes the candidate service identifiers for one application
// package. It is safe for concurrent use.
type Resolver struct {
	packageName string
	scanner     Scanner

	configured atomic.Pointer[string]
}

// New creates a Resolver for packageName. A nil scanner behaves as one that
// never detects anything.
func New(packageName string, scanner Scanner) *Resolver {
	return &Resolver{
		packageName: packageName,
		scanner:     scanner,
	}
}

// PackageName returns the owning package used to build identifiers.
func (r *Resolver) PackageName() string {
	return r.packageName
}

// SetServiceClassName overwrites the configured class name. The value is
// not validated. Concurrent callers race; the last store wins.
func (r *Resolver) SetServiceClassName(name string) {
	r.configured.Store(&name)
	logging.Debug(subsystem, "Configured service class set to %q", name)
}

// ConfiguredClassName returns the configured class name, if any.
func (r *Resolver) ConfiguredClassName() (string, bool) {
	p := r.configured.Load()
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

// Reset forgets the configured class name.
func (r *Resolver) Reset() {
	r.configured.Store(nil)
}

// DetectedServices returns the class names reported by the scanner. Scanner
// errors and panics are logged and yield an empty list.
func (r *Resolver) DetectedServices() (detected []string) {
	if r.scanner == nil {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn(subsystem, "Service scan panicked, treating as no detected services: %v", rec)
			detected = nil
		}
	}()

	names, err := r.scanner.DetectServices()
	if err != nil {
		logging.Warn(subsystem, "Service scan failed, treating as no detected services: %v", err)
		return nil
	}

	detected = make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		detected = append(detected, name)
	}
	return detected
}

// ResolveCandidateIdentifiers returns the identifiers that count as this
// application's service. The result is never empty.
func (r *Resolver) ResolveCandidateIdentifiers() []ServiceID {
	if name, ok := r.ConfiguredClassName(); ok {
		return []ServiceID{NewServiceID(r.packageName, name)}
	}

	if detected := r.DetectedServices(); len(detected) > 0 {
		ids := make([]ServiceID, 0, len(detected))
		for _, name := range detected {
			ids = append(ids, NewServiceID(r.packageName, name))
		}
		return ids
	}

	return []ServiceID{r.FallbackIdentifier()}
}

// FallbackIdentifier returns "<package>/<package>.MyAccessibilityService".
func (r *Resolver) FallbackIdentifier() ServiceID {
	return NewServiceID(r.packageName, r.packageName+FallbackClassSuffix)
}

// IsEnabled reads the enabled-services string from reader and reports whether
// any candidate identifier is present. Reader failures yield false.
func (r *Resolver) IsEnabled(ctx context.Context, reader SettingsReader) bool {
	raw, err := ReadSettings(ctx, reader)
	if err != nil {
		logging.Warn(subsystem, "Reading enabled services failed, reporting disabled: %v", err)
		return false
	}
	return IsAnyEnabled(r.ResolveCandidateIdentifiers(), raw)
}

// ReadSettings reads the enabled-services string from reader. A nil reader
// or a panicking reader is reported as an error.
func ReadSettings(ctx context.Context, reader SettingsReader) (raw *string, err error) {
	if reader == nil {
		return nil, fmt.Errorf("no settings reader configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			raw, err = nil, fmt.Errorf("settings reader panicked: %v", rec)
		}
	}()
	return reader.EnabledServices(ctx)
}

// IsAnyEnabled reports whether at least one candidate exactly equals a token
// of the colon-separated raw string. A nil or empty raw string yields false.
func IsAnyEnabled(candidates []ServiceID, raw *string) bool {
	if raw == nil || *raw == "" || len(candidates) == 0 {
		return false
	}

	enabled := make(map[string]struct{})
	for _, token := range ParseEnabledServices(*raw) {
		enabled[token] = struct{}{}
	}

	for _, id := range candidates {
		if _, ok := enabled[string(id)]; ok {
			return true
		}
	}
	return false
}

// ParseEnabledServices splits raw on ':' and returns the trimmed, non-empty
// tokens in order. Malformed tokens are returned unchanged; they simply never
// match a well-formed identifier.
func ParseEnabledServices(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ":")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
