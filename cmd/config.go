package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"a11ybridge/internal/cli"
	"a11ybridge/internal/config"
)

// newConfigCmd creates the "config" command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage a11ybridge configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		configPath  string
		packageName string
		force       bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("no configuration directory: pass --config-path")
			}
			target := filepath.Join(configPath, "config.yaml")
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}

			cfg := config.GetDefaultConfig()
			cfg.PackageName = packageName
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory")
	cmd.Flags().StringVarP(&packageName, "package", "p", "", "Owning application package name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.yaml")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	opts := &bridgeFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after applying flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := cli.OutputFormat(output)
			if format != cli.OutputFormatJSON && format != cli.OutputFormatYAML {
				return fmt.Errorf("unsupported output format: %q (valid: json, yaml)", output)
			}
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return cli.WriteStructured(cmd.OutOrStdout(), format, cfg)
		},
	}
	registerBridgeFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (json, yaml)")
	return cmd
}
