package config

import (
	"strings"

	"a11ybridge/pkg/logging"
)

// Validate checks the configuration for values that cannot be acted on.
// An empty package name is allowed here; commands that need one check it.
func (c BridgeConfig) Validate() error {
	var errs ValidationErrors

	switch c.Settings.Source {
	case "", SettingsSourceStatic:
	case SettingsSourceFile:
		if strings.TrimSpace(c.Settings.Path) == "" {
			errs.Add("settings.path", "is required for the file settings source")
		}
	case SettingsSourceADB:
		if c.Settings.Timeout < 0 {
			errs.Add("settings.timeout", "must not be negative", c.Settings.Timeout)
		}
	default:
		errs.Add("settings.source", "must be one of static, file, adb", c.Settings.Source)
	}

	if strings.Contains(c.PackageName, "/") {
		errs.Add("packageName", "must not contain '/'", c.PackageName)
	}

	if _, err := logging.ParseLogLevel(c.LogLevel); err != nil {
		errs.Add("logLevel", err.Error(), c.LogLevel)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
