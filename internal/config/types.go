package config

import "time"

// SettingsSource selects where the enabled-services string is read from.
type SettingsSource string

const (
	SettingsSourceStatic SettingsSource = "static"
	SettingsSourceFile   SettingsSource = "file"
	SettingsSourceADB    SettingsSource = "adb"
)

// BridgeConfig is the top-level configuration structure for a11ybridge.
type BridgeConfig struct {
	// PackageName is the owning application package.
	PackageName string `json:"packageName,omitempty" yaml:"packageName,omitempty"`
	// ServiceClassName is an explicit service class; it wins over detection.
	ServiceClassName string `json:"serviceClassName,omitempty" yaml:"serviceClassName,omitempty"`
	// DetectedServices lists declared service classes in declaration order.
	DetectedServices []string       `json:"detectedServices,omitempty" yaml:"detectedServices,omitempty"`
	Settings         SettingsConfig `json:"settings" yaml:"settings"`
	// LogLevel is one of debug, info, warn, error (default: info).
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

// SettingsConfig defines how the enabled-services string is obtained.
type SettingsConfig struct {
	Source  SettingsSource `json:"source,omitempty" yaml:"source,omitempty"`   // static, file or adb (default: static)
	Value   string         `json:"value,omitempty" yaml:"value,omitempty"`     // Fixed string for the static source
	Path    string         `json:"path,omitempty" yaml:"path,omitempty"`       // File for the file source
	ADBPath string         `json:"adbPath,omitempty" yaml:"adbPath,omitempty"` // adb binary (default: adb)
	Serial  string         `json:"serial,omitempty" yaml:"serial,omitempty"`   // Device serial for adb -s
	Timeout time.Duration  `json:"timeout,omitempty" yaml:"timeout,omitempty"` // adb query timeout (default: 10s)
}
