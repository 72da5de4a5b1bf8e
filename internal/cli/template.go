package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"a11ybridge/internal/registry"
)

// DefaultEventFormat renders one dispatched event per line.
const DefaultEventFormat = `{{ .Time | date "15:04:05.000" }} [{{ .Listener }}] {{ .PackageName }}/{{ .ClassName }}`

// EventView is the data passed to event format templates.
type EventView struct {
	registry.Event
	// Listener is the index of the listener that received the event.
	Listener int
	// Time is Timestamp converted to local time.
	Time time.Time
}

// EventFormatter renders dispatched events with a text/template extended by
// the sprig function library.
type EventFormatter struct {
	tmpl *template.Template
}

// NewEventFormatter parses format. An empty format selects DefaultEventFormat.
func NewEventFormatter(format string) (*EventFormatter, error) {
	if strings.TrimSpace(format) == "" {
		format = DefaultEventFormat
	}
	tmpl, err := template.New("event").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("invalid event format: %w", err)
	}
	return &EventFormatter{tmpl: tmpl}, nil
}

// Write renders event for listener to w followed by a newline.
func (f *EventFormatter) Write(w io.Writer, listener int, event registry.Event) error {
	var sb strings.Builder
	view := EventView{
		Event:    event,
		Listener: listener,
		Time:     time.UnixMilli(event.Timestamp),
	}
	if err := f.tmpl.Execute(&sb, view); err != nil {
		return fmt.Errorf("rendering event: %w", err)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
