// Package linestore reads and writes line-oriented text files. Reads are
// lazy and restartable; writes replace the whole file atomically.
package linestore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when the requested file does not exist
var ErrNotFound = errors.New("file not found")

const maxLineSize = 1024 * 1024

// Store handles raw line I/O for record files
type Store struct {
	perm fs.FileMode
}

// New creates a store that writes files with mode 0644
func New() *Store {
	return &Store{perm: 0o644}
}

// Exists reports whether a regular file is present at path
func (s *Store) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// Create makes an empty file at path, creating parent directories as needed.
// An existing file is left untouched.
func (s *Store) Create(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, s.perm)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f.Close()
}

// Lines yields every line of the file at path without its line terminator.
// The file is reopened each time the sequence is ranged over. On failure a
// single empty line is yielded together with the error and iteration stops;
// a missing file yields an error wrapping ErrNotFound.
func (s *Store) Lines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			yield("", fmt.Errorf("%w: %s", ErrNotFound, path))
			return
		}
		if err != nil {
			yield("", fmt.Errorf("failed to open %s: %w", path, err))
			return
		}
		defer func() { _ = f.Close() }()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if !yield(strings.TrimSuffix(scanner.Text(), "\r"), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("failed to read %s: %w", path, err))
		}
	}
}

// ReadAll collects every line of the file at path
func (s *Store) ReadAll(path string) ([]string, error) {
	var lines []string
	for line, err := range s.Lines(path) {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines replaces the content of path with lines, each terminated by a
// newline. The data is written to a temporary file in the same directory and
// renamed over the target, so a failed write leaves the old file intact.
func (s *Store) WriteLines(path string, lines []string) (retErr error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
