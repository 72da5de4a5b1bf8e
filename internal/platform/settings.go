package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"a11ybridge/pkg/logging"
)

const subsystem = "Platform"

// EnabledServicesSetting is the secure settings key holding the
// colon-separated list of enabled accessibility services.
const EnabledServicesSetting = "enabled_accessibility_services"

// StaticSettings reports a fixed enabled-services string. A nil Value
// reports the setting as unset.
type StaticSettings struct {
	Value *string
}

// NewStaticSettings returns a StaticSettings reporting raw.
func NewStaticSettings(raw string) StaticSettings {
	return StaticSettings{Value: &raw}
}

// EnabledServices returns the fixed value.
func (s StaticSettings) EnabledServices(ctx context.Context) (*string, error) {
	return s.Value, nil
}

// FileSettings reads the enabled-services string from a file, typically one
// kept in sync with a device by an external tool.
type FileSettings struct {
	Path string
}

// EnabledServices reads and trims the file. A missing file reports the
// setting as unset.
func (f FileSettings) EnabledServices(ctx context.Context) (*string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", f.Path, err)
	}
	raw := strings.TrimSpace(string(data))
	return &raw, nil
}

// ADBConfig configures an ADBSettings reader.
type ADBConfig struct {
	ADBPath string
	Serial  string
	Timeout time.Duration
}

// ADBSettings reads the setting from a connected device through adb.
type ADBSettings struct {
	adbPath string
	serial  string
	timeout time.Duration

	// run executes adb; replaced in tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewADBSettings creates an adb-backed reader. ADBPath defaults to "adb"
// and Timeout to 10 seconds.
func NewADBSettings(cfg ADBConfig) *ADBSettings {
	if cfg.ADBPath == "" {
		cfg.ADBPath = "adb"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &ADBSettings{
		adbPath: cfg.ADBPath,
		serial:  cfg.Serial,
		timeout: cfg.Timeout,
		run:     runCommand,
	}
}

// Args returns the adb arguments used to query the setting.
func (a *ADBSettings) Args() []string {
	var args []string
	if a.serial != "" {
		args = append(args, "-s", a.serial)
	}
	return append(args, "shell", "settings", "get", "secure", EnabledServicesSetting)
}

// EnabledServices runs adb and parses its output. The literal "null"
// printed for an unset key reports the setting as unset.
func (a *ADBSettings) EnabledServices(ctx context.Context) (*string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.run(ctx, a.adbPath, a.Args()...)
	if err != nil {
		return nil, fmt.Errorf("adb settings query failed: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "null" {
		return nil, nil
	}
	logging.Debug(subsystem, "adb reported %d bytes of enabled services", len(raw))
	return &raw, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// StaticScanner reports a fixed list of service class names.
type StaticScanner struct {
	Names []string
}

// DetectServices returns a copy of Names.
func (s StaticScanner) DetectServices() ([]string, error) {
	names := make([]string, len(s.Names))
	copy(names, s.Names)
	return names, nil
}
