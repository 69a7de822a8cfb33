// Package routeros implements the device registry against a Mikrotik
// RouterOS appliance over SSH. Each query is a one-shot RouterOS
// script command (`:put [...]`) whose printed output is the reply.
package routeros

import (
	"context"
	"fmt"
	"strings"

	"github.com/crimson-sun/kidcon/internal/parse"
	"github.com/crimson-sun/kidcon/internal/registry"
)

func init() {
	registry.Register("routeros", func(cfg registry.Config) (registry.Registry, error) {
		return Dial(cfg)
	})
}

// runner executes one RouterOS command and returns its output. The
// SSH client implements it; tests substitute a canned fake.
type runner interface {
	Run(ctx context.Context, command string) (string, error)
	Close() error
}

// Registry queries kid-control device counters on a RouterOS
// appliance.
type Registry struct {
	runner runner
}

// Dial connects to the appliance described by cfg and returns a
// Registry speaking to it. The caller must Close it when done.
func Dial(cfg registry.Config) (*Registry, error) {
	r, err := dialSSH(cfg)
	if err != nil {
		return nil, fmt.Errorf("routeros: %w", err)
	}
	return &Registry{runner: r}, nil
}

// Close releases the underlying SSH connection.
func (r *Registry) Close() error {
	return r.runner.Close()
}

func (r *Registry) FindByName(ctx context.Context, name string) (registry.Device, error) {
	out, err := r.runner.Run(ctx, findCommand(name))
	if err != nil {
		return registry.Device{}, fmt.Errorf("%w: find %s: %v", registry.ErrRegistry, name, err)
	}
	if strings.TrimSpace(out) == "0" {
		return registry.Device{}, fmt.Errorf("%w: %s", registry.ErrDeviceNotFound, name)
	}
	return registry.Device{Name: name}, nil
}

func (r *Registry) Counters(ctx context.Context, name string) (registry.Counters, error) {
	up, err := r.counter(ctx, name, "bytes-up")
	if err != nil {
		return registry.Counters{}, err
	}
	down, err := r.counter(ctx, name, "bytes-down")
	if err != nil {
		return registry.Counters{}, err
	}
	return registry.Counters{BytesUp: up, BytesDown: down}, nil
}

func (r *Registry) ResetAll(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "/ip kid-control device reset-counters"); err != nil {
		return fmt.Errorf("%w: reset-counters: %v", registry.ErrRegistry, err)
	}
	return nil
}

func (r *Registry) counter(ctx context.Context, name, field string) (uint64, error) {
	out, err := r.runner.Run(ctx, counterCommand(name, field))
	if err != nil {
		return 0, fmt.Errorf("%w: get %s %s: %v", registry.ErrRegistry, name, field, err)
	}
	value := strings.TrimSpace(out)
	if value == "" {
		return 0, fmt.Errorf("%w: get %s %s: empty reply", registry.ErrRegistry, name, field)
	}
	// RouterOS prints large counters with KiB/MiB/GiB suffixes.
	bytes, err := parse.Bytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: get %s %s: %v", registry.ErrRegistry, name, field, err)
	}
	return uint64(bytes), nil
}

func findCommand(name string) string {
	return fmt.Sprintf(`:put [:len [/ip kid-control device find name=%s]]`, quote(name))
}

func counterCommand(name, field string) string {
	return fmt.Sprintf(`:put [/ip kid-control device get [find name=%s] %s]`, quote(name), field)
}

// quote wraps a device name in RouterOS double quotes, escaping the
// characters RouterOS treats specially inside strings.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
