// Package bucketfile routes report lines into hour-bucketed log files
// via the bucket appender.
package bucketfile

import (
	"context"

	"github.com/crimson-sun/kidcon/internal/bucket"
)

// Sink appends each report line (with a trailing newline) to the
// current hour's bucket file.
type Sink struct {
	appender *bucket.Appender
}

// New creates a Sink over an existing appender.
func New(appender *bucket.Appender) *Sink {
	return &Sink{appender: appender}
}

func (s *Sink) Write(_ context.Context, line string) error {
	return s.appender.Append(line + "\n")
}

func (s *Sink) Close() error {
	return nil
}
