package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record has the requested key
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a record with the same key already exists
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrEmptyKey is returned when a record has no key
	ErrEmptyKey = errors.New("empty key")
)

// LineError describes a line that was skipped while loading a file
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// LoadReport summarizes one load of a record file
type LoadReport struct {
	Path    string
	Loaded  int
	Skipped []LineError
	// Missing is set when the file did not exist
	Missing bool
}
