package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crimson-sun/kidcon/internal/registry"
)

// Collector runs a collection batch over a fixed device list. A batch
// is two-phase: every device's counters are read first, and only when
// all reads have succeeded may the single global reset follow. A
// failed read aborts the batch with the counters untouched, so no
// device's data is lost to a premature reset.
type Collector struct {
	reporter *Reporter
	registry registry.Registry
	devices  []string
	logger   *slog.Logger
}

// NewCollector creates a Collector reporting on the given devices.
func NewCollector(reporter *Reporter, reg registry.Registry, devices []string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collector{
		reporter: reporter,
		registry: reg,
		devices:  devices,
		logger:   logger,
	}
}

// Collect reports on every configured device in order and returns the
// formatted lines. The registry is not reset; callers invoke Reset
// once the lines have been delivered.
func (c *Collector) Collect(ctx context.Context) ([]string, error) {
	runID := uuid.NewString()
	c.logger.Info("collection started", "run", runID, "devices", len(c.devices))

	lines := make([]string, 0, len(c.devices))
	for _, name := range c.devices {
		line, err := c.reporter.Report(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", name, err)
		}
		lines = append(lines, line)
	}

	c.logger.Info("collection finished", "run", runID, "lines", len(lines))
	return lines, nil
}

// Reset issues the single global counter reset that ends a batch.
// All devices' counters are zeroed, not just the collected ones.
func (c *Collector) Reset(ctx context.Context) error {
	if err := c.registry.ResetAll(ctx); err != nil {
		return fmt.Errorf("resetting counters: %w", err)
	}
	c.logger.Info("counters reset")
	return nil
}
