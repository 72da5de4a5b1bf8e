package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"a11ybridge/internal/bridge"
	"a11ybridge/internal/config"
	"a11ybridge/internal/platform"
	"a11ybridge/internal/resolver"
	"a11ybridge/pkg/logging"
)

// bridgeFlags holds the flags shared by commands that construct a Bridge.
// Each flag overrides the corresponding config.yaml value when set.
type bridgeFlags struct {
	ConfigPath      string
	PackageName     string
	ServiceClass    string
	Detected        []string
	EnabledServices string
	SettingsFile    string
	UseADB          bool
	Serial          string
	LogLevel        string
}

// registerBridgeFlags registers the bridge flags on cmd.
func registerBridgeFlags(cmd *cobra.Command, flags *bridgeFlags) {
	cmd.Flags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory")
	cmd.Flags().StringVarP(&flags.PackageName, "package", "p", "", "Owning application package name")
	cmd.Flags().StringVar(&flags.ServiceClass, "service-class", "", "Explicit accessibility service class (wins over detection)")
	cmd.Flags().StringSliceVar(&flags.Detected, "detected", nil, "Declared accessibility service classes, in declaration order")
	cmd.Flags().StringVar(&flags.EnabledServices, "enabled-services", "", "Enabled-services string to evaluate (static source)")
	cmd.Flags().StringVar(&flags.SettingsFile, "settings-file", "", "Read the enabled-services string from this file")
	cmd.Flags().BoolVar(&flags.UseADB, "adb", false, "Query the enabled-services string from a device through adb")
	cmd.Flags().StringVar(&flags.Serial, "serial", "", "Device serial passed to adb -s")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// outputFlags holds the output formatting flags.
type outputFlags struct {
	OutputFormat string
	NoHeaders    bool
}

func registerOutputFlags(cmd *cobra.Command, flags *outputFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
}

// resolveConfig loads config.yaml and applies flag overrides.
func resolveConfig(cmd *cobra.Command, flags *bridgeFlags) (config.BridgeConfig, error) {
	cfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return config.BridgeConfig{}, err
	}

	changed := cmd.Flags().Changed
	if changed("package") {
		cfg.PackageName = flags.PackageName
	}
	if changed("service-class") {
		cfg.ServiceClassName = flags.ServiceClass
	}
	if changed("detected") {
		cfg.DetectedServices = flags.Detected
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("serial") {
		cfg.Settings.Serial = flags.Serial
	}

	sources := 0
	if changed("enabled-services") {
		cfg.Settings.Source = config.SettingsSourceStatic
		cfg.Settings.Value = flags.EnabledServices
		sources++
	}
	if changed("settings-file") {
		cfg.Settings.Source = config.SettingsSourceFile
		cfg.Settings.Path = flags.SettingsFile
		sources++
	}
	if flags.UseADB {
		cfg.Settings.Source = config.SettingsSourceADB
		sources++
	}
	if sources > 1 {
		return config.BridgeConfig{}, errors.New("--enabled-services, --settings-file and --adb are mutually exclusive")
	}

	if err := cfg.Validate(); err != nil {
		return config.BridgeConfig{}, err
	}
	if cfg.PackageName == "" {
		return config.BridgeConfig{}, errors.New("package name is required: set packageName in config.yaml or pass --package")
	}
	return cfg, nil
}

// initLogging configures logging for a command run from cfg.
func initLogging(cmd *cobra.Command, cfg config.BridgeConfig) error {
	level, err := logging.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	return nil
}

// newSettingsReader builds the collaborator selected by cfg.Settings.
func newSettingsReader(cfg config.BridgeConfig) (resolver.SettingsReader, error) {
	switch cfg.Settings.Source {
	case "", config.SettingsSourceStatic:
		if cfg.Settings.Value == "" {
			return platform.StaticSettings{}, nil
		}
		return platform.NewStaticSettings(cfg.Settings.Value), nil
	case config.SettingsSourceFile:
		return platform.FileSettings{Path: cfg.Settings.Path}, nil
	case config.SettingsSourceADB:
		return platform.NewADBSettings(platform.ADBConfig{
			ADBPath: cfg.Settings.ADBPath,
			Serial:  cfg.Settings.Serial,
			Timeout: cfg.Settings.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported settings source %q", cfg.Settings.Source)
	}
}

// newBridge builds a Bridge from the command's flags and configuration.
func newBridge(cmd *cobra.Command, flags *bridgeFlags) (*bridge.Bridge, config.BridgeConfig, error) {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return nil, config.BridgeConfig{}, err
	}
	if err := initLogging(cmd, cfg); err != nil {
		return nil, config.BridgeConfig{}, err
	}

	settings, err := newSettingsReader(cfg)
	if err != nil {
		return nil, config.BridgeConfig{}, err
	}

	b, err := bridge.New(bridge.Options{
		PackageName: cfg.PackageName,
		Scanner:     platform.StaticScanner{Names: cfg.DetectedServices},
		Settings:    settings,
	})
	if err != nil {
		return nil, config.BridgeConfig{}, fmt.Errorf("creating bridge: %w", err)
	}
	if cfg.ServiceClassName != "" {
		b.SetServiceClassName(cfg.ServiceClassName)
	}
	return b, cfg, nil
}

// commandContext returns the command's context, or Background when the
// command was invoked without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
