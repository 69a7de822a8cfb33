// Package report turns device registry queries into kid-control
// report lines and runs the two-phase collect-then-reset batch over a
// device list.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/registry"
)

// Reporter formats one device's cumulative counters as a report line.
// Stateless across invocations; reading counters does not disturb
// them.
type Reporter struct {
	registry registry.Registry
	clock    clock.Clock
	logger   *slog.Logger
}

// NewReporter creates a Reporter over the given registry.
func NewReporter(reg registry.Registry, c clock.Clock, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reporter{registry: reg, clock: c, logger: logger}
}

// Report queries the registry for the named device's counters and
// returns the formatted line:
//
//	kid-control: <name> bytes-up=<up> bytes-down=<down>
//
// The sample time is captured for diagnostics but is not part of the
// line; downstream consumers stamp lines themselves. Returns
// registry.ErrDeviceNotFound for unknown names and a
// registry.ErrRegistry-wrapped error when the counter query fails.
func (r *Reporter) Report(ctx context.Context, name string) (string, error) {
	if _, err := r.registry.FindByName(ctx, name); err != nil {
		return "", err
	}
	counters, err := r.registry.Counters(ctx, name)
	if err != nil {
		return "", err
	}

	sampledAt := r.clock.Now()
	r.logger.Debug("device sampled",
		"device", name,
		"bytes_up", counters.BytesUp,
		"bytes_down", counters.BytesDown,
		"sampled_at", sampledAt,
	)

	return fmt.Sprintf("kid-control: %s bytes-up=%d bytes-down=%d",
		name, counters.BytesUp, counters.BytesDown), nil
}
