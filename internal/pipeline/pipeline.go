// Package pipeline wires the collector, sinks, and store into the
// two modes kidcon runs in: capture (query the appliance, emit report
// lines, reset counters) and ingest (parse forwarded appliance log
// lines into the sample store).
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/parse"
	"github.com/crimson-sun/kidcon/internal/report"
	"github.com/crimson-sun/kidcon/internal/sink"
	"github.com/crimson-sun/kidcon/internal/store"
)

// Pipeline runs collection batches against the device registry and
// delivers the resulting report lines to a sink.
type Pipeline struct {
	collector *report.Collector
	sink      sink.Sink
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a Pipeline from the given components.
func New(collector *report.Collector, snk sink.Sink, c clock.Clock, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{collector: collector, sink: snk, clock: c, logger: logger}
}

// Capture runs one collection batch: read every device's counters,
// deliver all report lines to the sink, then issue the single global
// counter reset. Any failure aborts before the reset so counters keep
// accumulating; the next capture simply reads larger values.
func (p *Pipeline) Capture(ctx context.Context) error {
	lines, err := p.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("pipeline capture: %w", err)
	}

	for _, line := range lines {
		if err := p.sink.Write(ctx, line); err != nil {
			return fmt.Errorf("pipeline capture: %w", err)
		}
	}

	if err := p.collector.Reset(ctx); err != nil {
		return fmt.Errorf("pipeline capture: %w", err)
	}
	return nil
}

// Run captures immediately and then once per interval until the
// context is cancelled. A failed capture is logged and the loop
// continues; the appliance keeps accumulating counters in the
// meantime.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	for {
		if err := p.Capture(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("capture failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.clock.After(interval):
		}
	}
}

// Close shuts down the sink.
func (p *Pipeline) Close() error {
	return p.sink.Close()
}

// Ingest reads forwarded appliance log lines from r and stores every
// kid-control counter report it finds. Lines that are not counter
// reports are skipped silently. Returns the number of samples stored.
func Ingest(ctx context.Context, r io.Reader, st *store.Store, c clock.Clock, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	scanner := bufio.NewScanner(r)
	stored := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return stored, ctx.Err()
		}
		smp, ok := parse.Syslog(scanner.Text(), c.Now())
		if !ok {
			continue
		}
		if err := st.Upsert(ctx, smp); err != nil {
			return stored, fmt.Errorf("pipeline ingest: %w", err)
		}
		stored++
	}
	if err := scanner.Err(); err != nil {
		return stored, fmt.Errorf("pipeline ingest: %w", err)
	}

	logger.Info("ingest finished", "samples", stored)
	return stored, nil
}
