package sink

import "context"

// Sink is a destination for complete report lines. Implementations
// receive one line per tracked device per collection run.
type Sink interface {
	Write(ctx context.Context, line string) error
	Close() error
}
