package mock

import (
	"context"
	"sync"
)

// Settings is a SettingsReader whose enabled-services value and error can be
// changed between calls. It records how often it was read.
type Settings struct {
	mu    sync.Mutex
	value *string
	err   error
	reads int
}

// NewSettings returns a Settings reporting raw.
func NewSettings(raw string) *Settings {
	return &Settings{value: &raw}
}

// EnabledServices returns the current value or error.
func (s *Settings) EnabledServices(ctx context.Context) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	if s.value == nil {
		return nil, nil
	}
	v := *s.value
	return &v, nil
}

// Set replaces the reported value.
func (s *Settings) Set(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = &raw
	s.err = nil
}

// Unset makes the reader report a nil (never written) setting.
func (s *Settings) Unset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	s.err = nil
}

// Fail makes subsequent reads return err.
func (s *Settings) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Reads returns the number of EnabledServices calls.
func (s *Settings) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Scanner is a Scanner returning a fixed list or error.
type Scanner struct {
	Names []string
	Err   error
}

// DetectServices returns Names or Err.
func (s Scanner) DetectServices() ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Names, nil
}
