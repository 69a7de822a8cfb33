package kidcon

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/kidcon/internal/bucket"
	"github.com/crimson-sun/kidcon/internal/registry"
	"github.com/crimson-sun/kidcon/internal/registry/memory"
	"github.com/crimson-sun/kidcon/internal/report"
)

// ErrDeviceNotFound is returned by Report for names absent from the
// registry.
var ErrDeviceNotFound = registry.ErrDeviceNotFound

// Kidcon captures kid-control counter reports from a device registry
// and optionally appends them to hour-bucketed log files. Safe for
// concurrent use.
type Kidcon struct {
	reporter  *report.Reporter
	collector *report.Collector
	appender  *bucket.Appender
}

// New creates a Kidcon instance from the given options.
func New(opts ...Option) (*Kidcon, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := o.registry
	if reg == nil {
		reg = memory.New(o.devices...)
	}

	reporter := report.NewReporter(reg, o.clock, nil)
	k := &Kidcon{
		reporter:  reporter,
		collector: report.NewCollector(reporter, reg, o.devices, nil),
	}
	if o.logDir != "" {
		k.appender = bucket.New(o.logDir, bucket.WithClock(o.clock))
	}
	return k, nil
}

// Report returns the formatted counter line for one device:
//
//	kid-control: <name> bytes-up=<up> bytes-down=<down>
//
// Returns ErrDeviceNotFound for unknown names. Counters are not
// disturbed.
func (k *Kidcon) Report(ctx context.Context, name string) (string, error) {
	return k.reporter.Report(ctx, name)
}

// Capture runs one collection batch over the configured devices:
// every device is reported, the lines are appended to the current
// hour's log bucket (when a log dir is configured), and the registry's
// counters are reset once. Returns the report lines.
func (k *Kidcon) Capture(ctx context.Context) ([]string, error) {
	lines, err := k.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if k.appender != nil {
		for _, line := range lines {
			if err := k.appender.Append(line + "\n"); err != nil {
				return nil, err
			}
		}
	}
	if err := k.collector.Reset(ctx); err != nil {
		return nil, err
	}
	return lines, nil
}

// Append adds a text fragment to the current hour's log bucket.
// Requires WithLogDir.
func (k *Kidcon) Append(fragment string) error {
	if k.appender == nil {
		return errors.New("kidcon: no log dir configured")
	}
	if err := k.appender.Append(fragment); err != nil {
		return fmt.Errorf("kidcon: %w", err)
	}
	return nil
}
