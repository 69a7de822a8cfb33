// Package sample parses report lines back into counter samples and
// persists them in the SQLite store. This mirrors how the appliance's
// own logs are ingested: the line format is the contract, whether the
// line arrived over syslog or straight from the reporter.
package sample

import (
	"context"
	"fmt"

	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/parse"
	"github.com/crimson-sun/kidcon/internal/store"
)

// Sink stores each report line as a timestamped sample. Lines that
// are not kid-control counter reports are an error here — this sink
// only ever sees reporter output.
type Sink struct {
	store *store.Store
	clock clock.Clock
}

// New creates a Sink writing into the given store, stamping samples
// with the clock's current time.
func New(st *store.Store, c clock.Clock) *Sink {
	return &Sink{store: st, clock: c}
}

func (s *Sink) Write(ctx context.Context, line string) error {
	smp, ok := parse.Report(line, s.clock.Now())
	if !ok {
		return fmt.Errorf("sample sink: unparseable report line %q", line)
	}
	return s.store.Upsert(ctx, smp)
}

// Close is a no-op; the store's lifecycle belongs to its owner.
func (s *Sink) Close() error {
	return nil
}
