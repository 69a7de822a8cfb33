// Package registry defines the device-registry collaborator: the
// external subsystem holding per-device cumulative byte counters.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrDeviceNotFound is returned when no device matches the requested
// name. Wrap with fmt.Errorf and test with errors.Is.
var ErrDeviceNotFound = errors.New("device not found")

// ErrRegistry is returned when the counter query itself fails (the
// device exists but the registry could not answer).
var ErrRegistry = errors.New("registry query failed")

// Device is one entry in the appliance's device registry.
type Device struct {
	Name string
}

// Counters holds a device's cumulative byte counters since the last
// global reset.
type Counters struct {
	BytesUp   uint64
	BytesDown uint64
}

// Registry is the capability set the reporter needs from the external
// device registry. Counter reset is global across all devices; the
// appliance exposes no per-device reset.
type Registry interface {
	// FindByName looks a device up by its registry name. Returns
	// ErrDeviceNotFound if no device matches.
	FindByName(ctx context.Context, name string) (Device, error)

	// Counters returns the device's cumulative byte counters.
	Counters(ctx context.Context, name string) (Counters, error)

	// ResetAll zeroes the byte counters of every device.
	ResetAll(ctx context.Context) error
}

// Config holds provider-specific connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	KeyFile  string
	Timeout  time.Duration
}
