package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/kidcon/internal/sink"
)

// Multi fans report lines out to several sinks. Each Write delivers
// the line to every wrapped sink sequentially; one sink failing does
// not stop delivery to the rest.
type Multi struct {
	sinks []sink.Sink
}

// New creates a Multi over the given sinks.
func New(sinks ...sink.Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Write delivers the line to every wrapped sink, collecting errors.
func (m *Multi) Write(ctx context.Context, line string) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(ctx, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
