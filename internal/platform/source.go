package platform

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"a11ybridge/internal/bridge"
	"a11ybridge/pkg/logging"
)

// DefaultMaxLineBytes caps a single event line. Longer lines are skipped.
const DefaultMaxLineBytes = 1 << 20

// JSONLinesSource reads newline-delimited JSON accessibility events.
//
//	{"eventType":32,"packageName":"com.android.chrome","className":"org.chromium.chrome.browser.ChromeTabbedActivity"}
//
// Blank lines are skipped; lines that fail to decode or exceed the line
// limit are logged and skipped.
type JSONLinesSource struct {
	r            io.Reader
	maxLineBytes int
}

// NewJSONLinesSource creates a source reading from r.
func NewJSONLinesSource(r io.Reader) *JSONLinesSource {
	return &JSONLinesSource{r: r, maxLineBytes: DefaultMaxLineBytes}
}

type eventLine struct {
	data      []byte
	oversized bool
}

// Stream emits one event per decoded line until EOF, a read error, ctx
// cancellation, or an emit error.
//
// Reads happen on a separate goroutine so cancellation is observed while the
// reader blocks. If the reader is an io.Closer it is closed on cancellation.
func (s *JSONLinesSource) Stream(ctx context.Context, emit func(bridge.AccessibilityEvent) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make(chan eventLine)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		readErr <- readLines(s.r, s.maxLineBytes, lines, done)
		close(lines)
	}()

	if c, ok := s.r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { c.Close() })
		defer stop()
	}

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading events: %w", err)
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			lineNo++

			if l.oversized {
				logging.Warn(subsystem, "Skipping event on line %d: longer than %d bytes", lineNo, s.maxLineBytes)
				continue
			}
			line := strings.TrimSpace(string(l.data))
			if line == "" {
				continue
			}

			var ev bridge.AccessibilityEvent
			if err := json.Unmarshal([]byte(line), &ev); err != nil {
				logging.Warn(subsystem, "Skipping undecodable event on line %d: %v", lineNo, err)
				continue
			}
			if err := emit(ev); err != nil {
				return err
			}
		}
	}
}

// readLines splits r into lines and sends them until EOF, a read error, or
// done is closed. Lines over maxBytes are sent as oversized without data.
func readLines(r io.Reader, maxBytes int, lines chan<- eventLine, done <-chan struct{}) error {
	br := bufio.NewReader(r)
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !oversized {
			if len(buf)+len(chunk) > maxBytes {
				oversized = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		select {
		case lines <- eventLine{data: buf, oversized: oversized}:
		case <-done:
			return nil
		}
		buf = nil
		oversized = false
	}
}
