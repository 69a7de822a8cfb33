// Package parse extracts device counter samples from kid-control log
// lines, in both forms the system sees: full syslog lines forwarded by
// the appliance and bare report lines produced by the reporter.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/kidcon/internal/model"
)

var (
	syslogRE = regexp.MustCompile(`(\w\w\w \d\d \d\d:\d\d:\d\d) \S+ kid-control: (\S+) bytes-up=(\S+) bytes-down=(\S+)`)
	reportRE = regexp.MustCompile(`kid-control: (\S+) bytes-up=(\S+) bytes-down=(\S+)`)
)

// Syslog parses a forwarded appliance log line such as
//
//	Feb 03 14:05:06 router kid-control: xiaomi-david bytes-up=1.5MiB bytes-down=120KiB
//
// The syslog timestamp carries no year; the year (current or
// previous) that places the parsed time closest to now is used.
// Returns false for lines that are not kid-control counter reports.
func Syslog(line string, now time.Time) (model.Sample, bool) {
	m := syslogRE.FindStringSubmatch(line)
	if m == nil {
		return model.Sample{}, false
	}
	ts, err := syslogTime(m[1], now)
	if err != nil {
		return model.Sample{}, false
	}
	up, err := Bytes(m[3])
	if err != nil {
		return model.Sample{}, false
	}
	down, err := Bytes(m[4])
	if err != nil {
		return model.Sample{}, false
	}
	return model.Sample{Time: ts, Name: m[2], BytesUp: up, BytesDown: down}, true
}

// Report parses a bare reporter line ("kid-control: <name>
// bytes-up=<v> bytes-down=<v>") with no timestamp of its own; the
// sample is stamped with now.
func Report(line string, now time.Time) (model.Sample, bool) {
	m := reportRE.FindStringSubmatch(line)
	if m == nil {
		return model.Sample{}, false
	}
	up, err := Bytes(m[2])
	if err != nil {
		return model.Sample{}, false
	}
	down, err := Bytes(m[3])
	if err != nil {
		return model.Sample{}, false
	}
	return model.Sample{Time: now, Name: m[1], BytesUp: up, BytesDown: down}, true
}

// Bytes converts a counter value with an optional KiB/MiB/GiB suffix
// to bytes. Bare numbers pass through unchanged.
func Bytes(value string) (float64, error) {
	factor := 1.0
	switch {
	case strings.HasSuffix(value, "KiB"):
		value, factor = value[:len(value)-3], 1024
	case strings.HasSuffix(value, "MiB"):
		value, factor = value[:len(value)-3], 1024*1024
	case strings.HasSuffix(value, "GiB"):
		value, factor = value[:len(value)-3], 1024*1024*1024
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse bytes %q: %w", value, err)
	}
	return n * factor, nil
}

// syslogTime parses "Jan 02 15:04:05" and supplies the missing year:
// of the current and the previous year, the one whose resulting time
// lies closest to now wins. A December line read in January therefore
// lands in the previous year.
func syslogTime(s string, now time.Time) (time.Time, error) {
	t, err := time.Parse("Jan 02 15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}

	thisYear := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location())
	lastYear := time.Date(now.Year()-1, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location())

	if absDuration(thisYear.Sub(now)) > absDuration(lastYear.Sub(now)) {
		return lastYear, nil
	}
	return thisYear, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
