// Package memory provides an in-memory device registry. It backs
// tests and the offline demo path; counters are bumped by hand via
// SetCounters.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/crimson-sun/kidcon/internal/registry"
)

func init() {
	registry.Register("memory", func(cfg registry.Config) (registry.Registry, error) {
		return New(), nil
	})
}

// Registry is an in-memory registry.Registry. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	devices map[string]registry.Counters
	resets  int
}

// New creates an empty in-memory registry.
func New(names ...string) *Registry {
	r := &Registry{devices: make(map[string]registry.Counters)}
	for _, n := range names {
		r.devices[n] = registry.Counters{}
	}
	return r
}

// SetCounters adds or updates a device with the given counters.
func (r *Registry) SetCounters(name string, up, down uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[name] = registry.Counters{BytesUp: up, BytesDown: down}
}

// Resets returns how many times ResetAll has been called.
func (r *Registry) Resets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}

func (r *Registry) FindByName(_ context.Context, name string) (registry.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[name]; !ok {
		return registry.Device{}, fmt.Errorf("%w: %s", registry.ErrDeviceNotFound, name)
	}
	return registry.Device{Name: name}, nil
}

func (r *Registry) Counters(_ context.Context, name string) (registry.Counters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.devices[name]
	if !ok {
		return registry.Counters{}, fmt.Errorf("%w: %s", registry.ErrDeviceNotFound, name)
	}
	return c, nil
}

func (r *Registry) ResetAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.devices {
		r.devices[name] = registry.Counters{}
	}
	r.resets++
	return nil
}
