package stdout

import (
	"context"
	"strings"
	"testing"
)

func TestWriteAppendsNewline(t *testing.T) {
	var buf strings.Builder
	s := NewWriter(&buf)

	if err := s.Write(context.Background(), "kid-control: devA bytes-up=100 bytes-down=250"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(context.Background(), "kid-control: devB bytes-up=1 bytes-down=2"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "kid-control: devA bytes-up=100 bytes-down=250\nkid-control: devB bytes-up=1 bytes-down=2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
