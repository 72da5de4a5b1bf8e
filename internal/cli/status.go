package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// CandidateStatus is one resolved identifier and whether it is enabled.
type CandidateStatus struct {
	ID      string `json:"id" yaml:"id"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// StatusReport is the result of evaluating the enabled state.
type StatusReport struct {
	PackageName      string            `json:"packageName" yaml:"packageName"`
	ConfiguredClass  string            `json:"configuredClass,omitempty" yaml:"configuredClass,omitempty"`
	DetectedServices []string          `json:"detectedServices" yaml:"detectedServices"`
	Candidates       []CandidateStatus `json:"candidates" yaml:"candidates"`
	EnabledServices  []string          `json:"enabledServices" yaml:"enabledServices"`
	Enabled          bool              `json:"enabled" yaml:"enabled"`
}

// RenderStatus writes report in the requested format.
func RenderStatus(w io.Writer, format OutputFormat, noHeaders bool, report StatusReport) error {
	if format != OutputFormatTable {
		return WriteStructured(w, format, report)
	}

	t := NewPlainTable(w)
	if !noHeaders {
		t.AppendHeader(table.Row{"Service", "Enabled"})
	}
	for _, c := range report.Candidates {
		t.AppendRow(table.Row{c.ID, yesNo(c.Enabled)})
	}
	t.Render()

	summary := text.FgRed.Sprint("disabled")
	if report.Enabled {
		summary = text.FgGreen.Sprint("enabled")
	}
	_, err := fmt.Fprintf(w, "\nAccessibility service for %s is %s\n", report.PackageName, summary)
	return err
}

// RenderServices writes the detected services and resolved candidates.
func RenderServices(w io.Writer, format OutputFormat, noHeaders bool, report StatusReport) error {
	if format != OutputFormatTable {
		return WriteStructured(w, format, struct {
			DetectedServices []string `json:"detectedServices" yaml:"detectedServices"`
			Candidates       []string `json:"candidates" yaml:"candidates"`
		}{report.DetectedServices, candidateIDs(report.Candidates)})
	}

	t := NewPlainTable(w)
	if !noHeaders {
		t.AppendHeader(table.Row{"Kind", "Name"})
	}
	for _, name := range report.DetectedServices {
		t.AppendRow(table.Row{"detected", name})
	}
	for _, c := range report.Candidates {
		t.AppendRow(table.Row{"candidate", c.ID})
	}
	t.Render()
	return nil
}

func candidateIDs(candidates []CandidateStatus) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
