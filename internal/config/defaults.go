package config

import "time"

const (
	// DefaultADBPath is the adb binary looked up on PATH.
	DefaultADBPath = "adb"

	// DefaultADBTimeout bounds a single adb settings query.
	DefaultADBTimeout = 10 * time.Second

	// DefaultLogLevel is used when logLevel is not configured.
	DefaultLogLevel = "info"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() BridgeConfig {
	return BridgeConfig{
		Settings: SettingsConfig{
			Source:  SettingsSourceStatic,
			ADBPath: DefaultADBPath,
			Timeout: DefaultADBTimeout,
		},
		LogLevel: DefaultLogLevel,
	}
}
