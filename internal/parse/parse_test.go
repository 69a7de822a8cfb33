package parse

import (
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"0", 0},
		{"1.5", 1.5},
		{"2KiB", 2048},
		{"1.5MiB", 1572864},
		{"3GiB", 3 * 1024 * 1024 * 1024},
		{"0.5KiB", 512},
	}
	for _, tt := range tests {
		got, err := Bytes(tt.in)
		if err != nil {
			t.Errorf("Bytes(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Bytes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBytesRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12XB", "KiB"} {
		if _, err := Bytes(in); err == nil {
			t.Errorf("Bytes(%q) should fail", in)
		}
	}
}

func TestSyslogParsesCounterLine(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	line := "Feb 03 14:05:06 router kid-control: xiaomi-david bytes-up=1.5MiB bytes-down=120KiB"

	s, ok := Syslog(line, now)
	if !ok {
		t.Fatal("Syslog did not match a valid line")
	}
	if s.Name != "xiaomi-david" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.BytesUp != 1572864 {
		t.Errorf("BytesUp = %v", s.BytesUp)
	}
	if s.BytesDown != 122880 {
		t.Errorf("BytesDown = %v", s.BytesDown)
	}
	want := time.Date(2026, 2, 3, 14, 5, 6, 0, time.UTC)
	if !s.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", s.Time, want)
	}
}

func TestSyslogSkipsUnrelatedLines(t *testing.T) {
	now := time.Now()
	for _, line := range []string{
		"",
		"Feb 03 14:05:06 router dhcp: lease granted",
		"kid-control without the syslog prefix",
		"Feb 03 14:05:06 router kid-control: dev bytes-up=abc bytes-down=1",
	} {
		if _, ok := Syslog(line, now); ok {
			t.Errorf("Syslog matched %q", line)
		}
	}
}

func TestSyslogYearInference(t *testing.T) {
	// A December line read in January belongs to the previous year.
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	line := "Dec 28 23:00:00 router kid-control: dev bytes-up=1 bytes-down=2"

	s, ok := Syslog(line, now)
	if !ok {
		t.Fatal("Syslog did not match")
	}
	if s.Time.Year() != 2025 {
		t.Errorf("Year = %d, want 2025", s.Time.Year())
	}

	// A January line read in January stays in the current year.
	line = "Jan 04 10:00:00 router kid-control: dev bytes-up=1 bytes-down=2"
	s, _ = Syslog(line, now)
	if s.Time.Year() != 2026 {
		t.Errorf("Year = %d, want 2026", s.Time.Year())
	}
}

func TestReportParsesBareLine(t *testing.T) {
	now := time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)
	s, ok := Report("kid-control: devA bytes-up=100 bytes-down=250", now)
	if !ok {
		t.Fatal("Report did not match")
	}
	if s.Name != "devA" || s.BytesUp != 100 || s.BytesDown != 250 {
		t.Errorf("sample = %+v", s)
	}
	if !s.Time.Equal(now) {
		t.Errorf("Time = %v, want %v", s.Time, now)
	}

	if _, ok := Report("unrelated line", now); ok {
		t.Error("Report matched an unrelated line")
	}
}
