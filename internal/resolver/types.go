package resolver

import (
	"context"
)

// ServiceID is a fully-qualified accessibility service identifier of the
// form "<owningPackage>/<fullyQualifiedClassName>".
type ServiceID string

// NewServiceID joins a package name and class name into a ServiceID.
func NewServiceID(packageName, className string) ServiceID {
	return ServiceID(packageName + "/" + className)
}

// String returns the identifier as a plain string.
func (id ServiceID) String() string {
	return string(id)
}

// Scanner reports the accessibility service class names declared by the
// host application. On Android this is backed by the package manager.
type Scanner interface {
	DetectServices() ([]string, error)
}

// ScannerFunc adapts a function to the Scanner interface.
type ScannerFunc func() ([]string, error)

// DetectServices calls the underlying function.
func (f ScannerFunc) DetectServices() ([]string, error) {
	return f()
}

// SettingsReader returns the raw enabled-services string maintained by the
// OS. A nil string means the setting is unset.
type SettingsReader interface {
	EnabledServices(ctx context.Context) (*string, error)
}

// SettingsReaderFunc adapts a function to the SettingsReader interface.
type SettingsReaderFunc func(ctx context.Context) (*string, error)

// EnabledServices calls the underlying function.
func (f SettingsReaderFunc) EnabledServices(ctx context.Context) (*string, error) {
	return f(ctx)
}
