package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPackage = "com.example.testaccessibility"

func strPtr(s string) *string { return &s }

func staticScanner(names ...string) Scanner {
	return ScannerFunc(func() ([]string, error) { return names, nil })
}

func TestResolveCandidateIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		scanner    Scanner
		expected   []ServiceID
	}{
		{
			name:       "configured class wins over detected services",
			configured: "com.example.Custom",
			scanner:    staticScanner("A", "B"),
			expected:   []ServiceID{"com.example.testaccessibility/com.example.Custom"},
		},
		{
			name:     "detected services preserve scanner order",
			scanner:  staticScanner("A", "B"),
			expected: []ServiceID{testPackage + "/A", testPackage + "/B"},
		},
		{
			name:     "fallback when nothing detected",
			scanner:  staticScanner(),
			expected: []ServiceID{testPackage + "/" + testPackage + ".MyAccessibilityService"},
		},
		{
			name:     "fallback with nil scanner",
			expected: []ServiceID{testPackage + "/" + testPackage + ".MyAccessibilityService"},
		},
		{
			name: "fallback when scanner fails",
			scanner: ScannerFunc(func() ([]string, error) {
				return []string{"ignored"}, errors.New("reflection error")
			}),
			expected: []ServiceID{testPackage + "/" + testPackage + ".MyAccessibilityService"},
		},
		{
			name: "fallback when scanner panics",
			scanner: ScannerFunc(func() ([]string, error) {
				panic("package manager unavailable")
			}),
			expected: []ServiceID{testPackage + "/" + testPackage + ".MyAccessibilityService"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(testPackage, tt.scanner)
			if tt.configured != "" {
				r.SetServiceClassName(tt.configured)
			}
			assert.Equal(t, tt.expected, r.ResolveCandidateIdentifiers())
		})
	}
}

func TestResolveCandidateIdentifiers_ConfiguredIgnoresScanner(t *testing.T) {
	called := false
	r := New(testPackage, ScannerFunc(func() ([]string, error) {
		called = true
		return []string{"A"}, nil
	}))
	r.SetServiceClassName("X")

	assert.Equal(t, []ServiceID{testPackage + "/X"}, r.ResolveCandidateIdentifiers())
	assert.False(t, called, "scanner must not be consulted when a class is configured")
}

func TestSetServiceClassName_LastWriteWins(t *testing.T) {
	r := New(testPackage, nil)

	_, ok := r.ConfiguredClassName()
	assert.False(t, ok)

	r.SetServiceClassName("First")
	r.SetServiceClassName("Second")

	name, ok := r.ConfiguredClassName()
	require.True(t, ok)
	assert.Equal(t, "Second", name)

	r.Reset()
	_, ok = r.ConfiguredClassName()
	assert.False(t, ok)
}

func TestSetServiceClassName_Concurrent(t *testing.T) {
	r := New(testPackage, nil)
	names := []string{"A", "B", "C", "D"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.SetServiceClassName(names[i%len(names)])
		}(i)
		go func() {
			defer wg.Done()
			ids := r.ResolveCandidateIdentifiers()
			assert.Len(t, ids, 1)
		}()
	}
	wg.Wait()

	name, ok := r.ConfiguredClassName()
	require.True(t, ok)
	assert.Contains(t, names, name)
}

func TestIsAnyEnabled(t *testing.T) {
	tests := []struct {
		name       string
		candidates []ServiceID
		raw        *string
		expected   bool
	}{
		{"exact token among others", []ServiceID{"pkg/X"}, strPtr("pkg/XY:pkg/X:other/Y"), true},
		{"no substring match", []ServiceID{"pkg/X"}, strPtr("pkg/XY:other/Y"), false},
		{"no suffix match", []ServiceID{"pkg/X"}, strPtr("apkg/X"), false},
		{"empty string", []ServiceID{"pkg/X"}, strPtr(""), false},
		{"nil string", []ServiceID{"pkg/X"}, nil, false},
		{"surrounding whitespace", []ServiceID{"pkg/X"}, strPtr(" pkg/X "), true},
		{"case sensitive", []ServiceID{"pkg/X"}, strPtr("PKG/X"), false},
		{"malformed tokens are inert", []ServiceID{"pkg/X"}, strPtr("::pkg:/:/X: :pkg/X"), true},
		{"only separators", []ServiceID{"pkg/X"}, strPtr(":::"), false},
		{"second candidate matches", []ServiceID{"pkg/A", "pkg/B"}, strPtr("pkg/B"), true},
		{"no candidates", nil, strPtr("pkg/X"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAnyEnabled(tt.candidates, tt.raw))
		})
	}
}

func TestIsAnyEnabled_LongList(t *testing.T) {
	tokens := make([]string, 0, 5001)
	for i := 0; i < 5000; i++ {
		tokens = append(tokens, "com.other/.Service"+strings.Repeat("x", i%7))
	}
	tokens = append(tokens, "pkg/X")
	raw := strings.Join(tokens, ":")

	assert.True(t, IsAnyEnabled([]ServiceID{"pkg/X"}, &raw))
}

func TestParseEnabledServices(t *testing.T) {
	assert.Nil(t, ParseEnabledServices(""))
	assert.Equal(t, []string{"a/b", "c/d"}, ParseEnabledServices(" a/b : :c/d:"))
}

func TestIsEnabled_EndToEnd(t *testing.T) {
	r := New(testPackage, staticScanner())
	reader := SettingsReaderFunc(func(ctx context.Context) (*string, error) {
		return strPtr("com.other/.S:com.example.testaccessibility/com.example.testaccessibility.MyAccessibilityService"), nil
	})

	assert.True(t, r.IsEnabled(context.Background(), reader))
}

func TestIsEnabled_ReaderFailures(t *testing.T) {
	r := New(testPackage, nil)

	failing := SettingsReaderFunc(func(ctx context.Context) (*string, error) {
		return nil, errors.New("settings provider unavailable")
	})
	panicking := SettingsReaderFunc(func(ctx context.Context) (*string, error) {
		panic("binder died")
	})

	assert.False(t, r.IsEnabled(context.Background(), failing))
	assert.False(t, r.IsEnabled(context.Background(), panicking))
	assert.False(t, r.IsEnabled(context.Background(), nil))
}

func TestDetectedServices_SkipsEmptyNames(t *testing.T) {
	r := New(testPackage, staticScanner("A", "", "B"))
	assert.Equal(t, []string{"A", "B"}, r.DetectedServices())
}
