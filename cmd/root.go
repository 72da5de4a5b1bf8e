package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeDisabled is returned by "status --exit-code" when no candidate
	// service is enabled.
	ExitCodeDisabled = 3
)

// rootCmd represents the base command for the a11ybridge application.
var rootCmd = &cobra.Command{
	Use:   "a11ybridge",
	Short: "Inspect Android accessibility service state and foreground-app events",
	Long: `a11ybridge resolves which accessibility services belong to an Android
application, checks them against the device's enabled-services setting, and
fans foreground-app-change events out to any number of listeners.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "a11ybridge version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		var status *exitStatusError
		if !errors.As(err, &status) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(getExitCode(err))
	}
}

// exitStatusError requests a specific exit code without printing a message.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var status *exitStatusError
	if errors.As(err, &status) {
		return status.code
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newServicesCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
}
