package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/registry"
	"github.com/crimson-sun/kidcon/internal/registry/memory"
)

func testReporter(reg registry.Registry) *Reporter {
	fc := clock.Fake(time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC))
	return NewReporter(reg, fc, nil)
}

func TestReportFormat(t *testing.T) {
	reg := memory.New()
	reg.SetCounters("devA", 100, 250)

	line, err := testReporter(reg).Report(context.Background(), "devA")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	want := "kid-control: devA bytes-up=100 bytes-down=250"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestReportMissingDevice(t *testing.T) {
	reg := memory.New("real-device")

	line, err := testReporter(reg).Report(context.Background(), "ghost-device")
	if !errors.Is(err, registry.ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
	if line != "" {
		t.Errorf("line = %q, want empty on failure", line)
	}
}

func TestReportRegistryFailure(t *testing.T) {
	reg := &brokenRegistry{}

	_, err := testReporter(reg).Report(context.Background(), "devA")
	if !errors.Is(err, registry.ErrRegistry) {
		t.Errorf("err = %v, want ErrRegistry", err)
	}
}

func TestReportIsReadOnly(t *testing.T) {
	reg := memory.New()
	reg.SetCounters("devA", 7, 9)
	r := testReporter(reg)
	ctx := context.Background()

	r.Report(ctx, "devA")
	r.Report(ctx, "devA")

	c, _ := reg.Counters(ctx, "devA")
	if c.BytesUp != 7 || c.BytesDown != 9 {
		t.Errorf("counters disturbed by Report: %+v", c)
	}
	if reg.Resets() != 0 {
		t.Errorf("Report triggered %d resets, want 0", reg.Resets())
	}
}

// brokenRegistry finds every device but fails every counter query.
type brokenRegistry struct{}

func (brokenRegistry) FindByName(_ context.Context, name string) (registry.Device, error) {
	return registry.Device{Name: name}, nil
}

func (brokenRegistry) Counters(_ context.Context, name string) (registry.Counters, error) {
	return registry.Counters{}, registry.ErrRegistry
}

func (brokenRegistry) ResetAll(_ context.Context) error { return nil }
