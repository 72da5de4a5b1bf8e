// Package cli provides the output formatting shared by a11ybridge commands:
// output format validation, structured (JSON/YAML) rendering, kubectl-style
// tables and templated rendering of dispatched events.
package cli
