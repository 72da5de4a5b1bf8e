package platform

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ybridge/internal/bridge"
	"a11ybridge/internal/registry"
)

func TestJSONLinesSource(t *testing.T) {
	input := strings.Join([]string{
		`{"eventType":32,"packageName":"com.android.chrome","className":"org.chromium.chrome.browser.ChromeTabbedActivity"}`,
		``,
		`not json`,
		`{"eventType":2048,"packageName":"com.android.chrome","className":"android.widget.TextView"}`,
	}, "\n")

	var events []bridge.AccessibilityEvent
	err := NewJSONLinesSource(strings.NewReader(input)).Stream(context.Background(), func(ev bridge.AccessibilityEvent) error {
		events = append(events, ev)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, bridge.EventTypeWindowStateChanged, events[0].EventType)
	assert.Equal(t, "com.android.chrome", events[0].PackageName)
	assert.Equal(t, bridge.EventTypeWindowContentChanged, events[1].EventType)
}

func TestJSONLinesSource_EmitErrorStops(t *testing.T) {
	input := `{"eventType":32,"packageName":"a","className":"b"}` + "\n" + `{"eventType":32,"packageName":"c","className":"d"}`
	stop := errors.New("stop")

	calls := 0
	err := NewJSONLinesSource(strings.NewReader(input)).Stream(context.Background(), func(bridge.AccessibilityEvent) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestJSONLinesSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewJSONLinesSource(strings.NewReader(`{"eventType":32}`)).Stream(ctx, func(bridge.AccessibilityEvent) error {
		t.Fatal("emit must not be called after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONLinesSource_FeedsBridge(t *testing.T) {
	b, err := bridge.New(bridge.Options{PackageName: "com.example", Settings: NewStaticSettings("")})
	require.NoError(t, err)

	var classes []string
	b.AddListener(func(e registry.Event) error {
		classes = append(classes, e.ClassName)
		return nil
	})

	input := `{"eventType":32,"packageName":"a","className":"A"}` + "\n" +
		`{"eventType":32,"packageName":"b","className":""}` + "\n" +
		`{"eventType":32,"packageName":"c","className":"C"}`
	require.NoError(t, b.Run(context.Background(), NewJSONLinesSource(strings.NewReader(input))))
	assert.Equal(t, []string{"A", "C"}, classes)
}

func TestJSONLinesSource_CancelWhileReaderIdle(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- NewJSONLinesSource(pr).Stream(ctx, func(bridge.AccessibilityEvent) error { return nil })
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Stream did not return after cancellation on idle input")
	}
}

func TestJSONLinesSource_OversizedLineSkipped(t *testing.T) {
	long := `{"eventType":32,"packageName":"big","className":"` + strings.Repeat("x", 2048) + `"}`
	input := long + "\n" + `{"eventType":32,"packageName":"small","className":"S"}`

	src := NewJSONLinesSource(strings.NewReader(input))
	src.maxLineBytes = 1024

	var packages []string
	err := src.Stream(context.Background(), func(ev bridge.AccessibilityEvent) error {
		packages = append(packages, ev.PackageName)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"small"}, packages)
}

func TestJSONLinesSource_LinesBeyondScannerDefault(t *testing.T) {
	class := strings.Repeat("c", 100*1024)
	input := `{"eventType":32,"packageName":"p","className":"` + class + `"}`

	var got []bridge.AccessibilityEvent
	err := NewJSONLinesSource(strings.NewReader(input)).Stream(context.Background(), func(ev bridge.AccessibilityEvent) error {
		got = append(got, ev)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, class, got[0].ClassName)
}
