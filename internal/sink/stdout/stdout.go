package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Sink writes report lines to stdout, one per line.
type Sink struct {
	w io.Writer
}

// New creates a stdout Sink.
func New() *Sink {
	return &Sink{w: os.Stdout}
}

// NewWriter creates a Sink over an arbitrary writer. Used by tests.
func NewWriter(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Write(_ context.Context, line string) error {
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		return fmt.Errorf("stdout sink: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return nil
}
