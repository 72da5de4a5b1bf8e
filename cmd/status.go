package cmd

import (
	"github.com/spf13/cobra"

	"a11ybridge/internal/bridge"
	"a11ybridge/internal/cli"
	"a11ybridge/internal/resolver"
	"a11ybridge/pkg/logging"
)

type statusOptions struct {
	bridge   bridgeFlags
	output   outputFlags
	exitCode bool
}

// newStatusCmd creates the command reporting whether the application's
// accessibility service is enabled.
func newStatusCmd() *cobra.Command {
	opts := &statusOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the application's accessibility service is enabled",
		Long: `Resolve the application's accessibility service identifiers and check them
against the enabled-services setting.

Identifiers are chosen by priority: --service-class (or serviceClassName),
then the declared services (--detected), then the fallback
<package>/<package>.MyAccessibilityService.

Examples:
  # Evaluate a captured settings value
  a11ybridge status -p com.example.app --enabled-services "com.other/.S:com.example.app/com.example.app.MyAccessibilityService"

  # Ask a connected device
  a11ybridge status -p com.example.app --adb --serial emulator-5554 -o json

  # Use in scripts
  a11ybridge status --exit-code || echo "accessibility service is off"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}
	registerBridgeFlags(cmd, &opts.bridge)
	registerOutputFlags(cmd, &opts.output)
	cmd.Flags().BoolVar(&opts.exitCode, "exit-code", false, "Exit with status 3 when the service is not enabled")
	return cmd
}

func runStatus(cmd *cobra.Command, opts *statusOptions) error {
	if err := cli.ValidateOutputFormat(opts.output.OutputFormat); err != nil {
		return err
	}

	b, _, err := newBridge(cmd, &opts.bridge)
	if err != nil {
		return err
	}

	report := buildStatusReport(cmd, b)
	if err := cli.RenderStatus(cmd.OutOrStdout(), cli.OutputFormat(opts.output.OutputFormat), opts.output.NoHeaders, report); err != nil {
		return err
	}

	if opts.exitCode && !report.Enabled {
		return &exitStatusError{code: ExitCodeDisabled}
	}
	return nil
}

// buildStatusReport reads the enabled-services setting once and evaluates
// every candidate against it.
func buildStatusReport(cmd *cobra.Command, b *bridge.Bridge) cli.StatusReport {
	raw, err := b.EnabledServices(commandContext(cmd))
	if err != nil {
		logging.Warn("CLI", "Reading enabled services failed, reporting disabled: %v", err)
		raw = nil
	}

	candidates := b.CandidateIdentifiers()
	report := cli.StatusReport{
		PackageName:      b.PackageName(),
		DetectedServices: b.GetDetectedServices(),
		Candidates:       make([]cli.CandidateStatus, 0, len(candidates)),
		EnabledServices:  []string{},
		Enabled:          resolver.IsAnyEnabled(candidates, raw),
	}
	if name, ok := b.ConfiguredClassName(); ok {
		report.ConfiguredClass = name
	}
	if raw != nil {
		if tokens := resolver.ParseEnabledServices(*raw); tokens != nil {
			report.EnabledServices = tokens
		}
	}
	for _, id := range candidates {
		report.Candidates = append(report.Candidates, cli.CandidateStatus{
			ID:      id.String(),
			Enabled: resolver.IsAnyEnabled([]resolver.ServiceID{id}, raw),
		})
	}
	return report
}
