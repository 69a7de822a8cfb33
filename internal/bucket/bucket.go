// Package bucket appends text to hour-bucketed log files.
//
// A bucket is identified purely by the current wall-clock hour: all
// appends made during hour HH land in prefix/HH.txt. The file is
// created lazily on the first append of the hour, never deleted, and
// grows by straight concatenation.
//
// Buckets are keyed by hour only, so the same hour of different
// calendar days shares one file. Callers that want day separation
// must rotate the prefix externally (e.g. a per-date directory).
package bucket

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/crimson-sun/kidcon/internal/clock"
)

// Option configures an Appender.
type Option func(*Appender)

// WithStore sets the file-store collaborator. Default: OSStore.
func WithStore(s Store) Option {
	return func(a *Appender) { a.store = s }
}

// WithClock sets the clock used to derive the bucket hour and the
// creation header. Default: the real clock.
func WithClock(c clock.Clock) Option {
	return func(a *Appender) { a.clock = c }
}

// Appender appends text fragments to the current hour's bucket file
// under a fixed directory prefix.
//
// Appends within one process are serialized by a mutex, so concurrent
// callers cannot lose each other's updates. Appenders in separate
// processes sharing a prefix are still subject to the read-then-write
// race; nothing here locks the file itself.
type Appender struct {
	prefix string
	store  Store
	clock  clock.Clock
	mu     sync.Mutex
}

// New creates an Appender writing under the given directory prefix.
// The directory must already exist and be writable.
func New(prefix string, opts ...Option) *Appender {
	a := &Appender{
		prefix: prefix,
		store:  OSStore{},
		clock:  clock.Real(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Path returns the bucket file path for the hour of t.
func (a *Appender) Path(t time.Time) string {
	return filepath.Join(a.prefix, t.Format("15")+".txt")
}

// Append adds fragment to the current hour's bucket. No separator is
// inserted; fragments carry their own newlines.
//
// If the bucket file does not exist yet it is first created holding a
// timestamp header line, then immediately overwritten with fragment.
// The two steps are deliberate: the file comes into existence via a
// timestamp print, and the first append discards that header. If it
// exists, the current contents are read and the file is rewritten
// with fragment concatenated on the end.
func (a *Appender) Append(fragment string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	path := a.Path(now)

	exists, err := a.store.Exists(path)
	if err != nil {
		return fmt.Errorf("bucket: %w", err)
	}

	if !exists {
		if err := a.store.CreateWithTimestamp(path, now); err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
		if err := a.store.Write(path, fragment); err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
		return nil
	}

	current, err := a.store.Read(path)
	if err != nil {
		return fmt.Errorf("bucket: %w", err)
	}
	if err := a.store.Write(path, current+fragment); err != nil {
		return fmt.Errorf("bucket: %w", err)
	}
	return nil
}
