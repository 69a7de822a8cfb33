// Package clock provides an injectable time abstraction.
//
// Production code accepts a Clock instead of calling time.Now or
// time.After directly. Real() wraps the standard library; Fake()
// gives tests a deterministic clock that advances only on demand.
package clock

import "time"

// Clock abstracts the time operations kidcon needs: reading the
// current time (hour-bucket derivation, file headers, sample
// timestamps) and waiting between capture runs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
