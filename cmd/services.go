package cmd

import (
	"github.com/spf13/cobra"

	"a11ybridge/internal/cli"
)

type servicesOptions struct {
	bridge bridgeFlags
	output outputFlags
}

// newServicesCmd creates the command listing detected and candidate services.
func newServicesCmd() *cobra.Command {
	opts := &servicesOptions{}
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List detected accessibility services and the identifiers that will be checked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(opts.output.OutputFormat); err != nil {
				return err
			}
			b, _, err := newBridge(cmd, &opts.bridge)
			if err != nil {
				return err
			}
			report := cli.StatusReport{
				PackageName:      b.PackageName(),
				DetectedServices: b.GetDetectedServices(),
			}
			for _, id := range b.CandidateIdentifiers() {
				report.Candidates = append(report.Candidates, cli.CandidateStatus{ID: id.String()})
			}
			return cli.RenderServices(cmd.OutOrStdout(), cli.OutputFormat(opts.output.OutputFormat), opts.output.NoHeaders, report)
		},
	}
	registerBridgeFlags(cmd, &opts.bridge)
	registerOutputFlags(cmd, &opts.output)
	return cmd
}
