package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"a11ybridge/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/a11ybridge"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/a11ybridge, or an empty string when
// the home directory cannot be determined.
func GetDefaultConfigPath() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath over the defaults. A missing
// file yields the defaults.
func LoadConfig(configPath string) (BridgeConfig, error) {
	config := GetDefaultConfig()
	if configPath == "" {
		logging.Debug("ConfigLoader", "No configuration directory, using defaults")
		return config, nil
	}

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return BridgeConfig{}, ConfigurationError{
			FilePath:  configFilePath,
			ErrorType: "io",
			Message:   err.Error(),
			Err:       err,
		}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return BridgeConfig{}, ConfigurationError{
			FilePath:    configFilePath,
			ErrorType:   "parse",
			Message:     err.Error(),
			Suggestions: []string{"check the YAML syntax", "durations such as settings.timeout use Go syntax, e.g. 5s"},
			Err:         err,
		}
	}

	if err := config.Validate(); err != nil {
		return BridgeConfig{}, ConfigurationError{
			FilePath:  configFilePath,
			ErrorType: "validation",
			Message:   err.Error(),
			Err:       err,
		}
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// SaveConfig writes config to config.yaml under configPath, creating the
// directory if needed.
func SaveConfig(configPath string, config BridgeConfig) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", configPath, err)
	}
	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return os.WriteFile(filepath.Join(configPath, configFileName), data, 0644)
}
