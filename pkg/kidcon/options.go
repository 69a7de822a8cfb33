package kidcon

import (
	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/registry"
)

type options struct {
	registry registry.Registry
	devices  []string
	logDir   string
	clock    clock.Clock
}

// Option configures a Kidcon instance.
type Option func(*options)

// WithRegistry sets the device registry to query. Default: an empty
// in-memory registry.
func WithRegistry(reg registry.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithDevices sets the device names reported by Capture, in order.
func WithDevices(names ...string) Option {
	return func(o *options) { o.devices = names }
}

// WithLogDir enables the hour-bucket appender under the given
// directory; Capture then routes every report line through it. The
// directory must exist. Without this option, Append is unavailable
// and Capture only returns lines.
func WithLogDir(dir string) Option {
	return func(o *options) { o.logDir = dir }
}

// WithClock sets the clock used for bucket hours and file headers.
// Default: the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func defaultOptions() options {
	return options{clock: clock.Real()}
}
