package bucket

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is the file-store collaborator the appender writes through.
// The capability set is deliberately small: existence check, full
// read, full overwrite, and creation with a timestamp header.
type Store interface {
	// Exists reports whether a file exists at path.
	Exists(path string) (bool, error)

	// Read returns the full contents of the file at path as text.
	Read(path string) (string, error)

	// Write replaces the contents of the file at path with content,
	// creating the file if needed. The replacement is all-or-nothing:
	// a failed Write leaves the previous contents intact.
	Write(path string, content string) error

	// CreateWithTimestamp creates the file at path holding a single
	// formatted timestamp line.
	CreateWithTimestamp(path string, t time.Time) error
}

// headerFormat is the layout of the timestamp line written when a
// bucket file is first created.
const headerFormat = "2006-01-02 15:04:05"

// OSStore is a Store backed by the local filesystem. Writes go
// through a temp file in the target directory followed by a rename,
// so a crash mid-write never leaves a torn bucket file.
type OSStore struct{}

func (OSStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

func (OSStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (OSStore) Write(path string, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s OSStore) CreateWithTimestamp(path string, t time.Time) error {
	return s.Write(path, t.Format(headerFormat)+"\n")
}
