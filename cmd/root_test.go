package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
	assert.Equal(t, ExitCodeDisabled, getExitCode(&exitStatusError{code: ExitCodeDisabled}))
	assert.Equal(t, ExitCodeDisabled, getExitCode(fmt.Errorf("wrapped: %w", &exitStatusError{code: ExitCodeDisabled})))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "status", "services", "watch", "config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
