package platform

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ybridge/internal/resolver"
)

func TestSettingsWatcher_ReportsTransitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enabled_accessibility_services")
	require.NoError(t, os.WriteFile(path, []byte("com.other/.S"), 0644))

	r := resolver.New("com.example", nil)
	settings := FileSettings{Path: path}

	var mu sync.Mutex
	var states []bool
	w := NewSettingsWatcher(path, func(ctx context.Context) bool {
		return r.IsEnabled(ctx, settings)
	}, func(enabled bool) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, enabled)
	}, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	snapshot := func() []bool {
		mu.Lock()
		defer mu.Unlock()
		out := make([]bool, len(states))
		copy(out, states)
		return out
	}

	require.Eventually(t, func() bool { return len(snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []bool{false}, snapshot())

	require.NoError(t, os.WriteFile(path, []byte("com.other/.S:com.example/com.example.MyAccessibilityService"), 0644))
	require.Eventually(t, func() bool { return len(snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []bool{false, true}, snapshot())

	enabled, known := w.Enabled()
	assert.True(t, known)
	assert.True(t, enabled)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool { return len(snapshot()) == 3 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []bool{false, true, false}, snapshot())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestSettingsWatcher_MissingDirectory(t *testing.T) {
	w := NewSettingsWatcher(filepath.Join(t.TempDir(), "missing", "file"), func(context.Context) bool { return false }, nil, 0)
	assert.Error(t, w.Run(context.Background()))
}
