// Package codec converts rental records to and from their single-line text
// representation.
//
// Top-level fields are separated by FieldSep. One level of nesting (an
// embedded property, a list of IDs) uses SubSep. Free-text fields may not
// contain either separator or a line break.
package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	FieldSep = ","
	SubSep   = ";"

	// PersonDateLayout is used for dates of birth and payment dates (dd-MM-yyyy)
	PersonDateLayout = "02-01-2006"
	// AgreementDateLayout is used for contract dates (yyyy-MM-dd)
	AgreementDateLayout = "2006-01-02"
)

var (
	// ErrMalformedRecord marks a line that cannot be parsed into a record
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnknownVariant marks an embedded property with an unrecognized type tag
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrUnresolvedReference marks a foreign ID that has no matching record
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnencodableField marks a value that cannot be written without corrupting the line
	ErrUnencodableField = errors.New("unencodable field")
)

// Codec maps one record type to and from a text line
type Codec[T any] interface {
	Encode(item T) (string, error)
	Decode(line string) (T, error)
}

// Lookup resolves a foreign ID to a loaded record
type Lookup[T any] interface {
	Get(id string) (T, bool)
}

// MapLookup is a Lookup backed by a map
type MapLookup[T any] map[string]T

// Get returns the record stored under id
func (m MapLookup[T]) Get(id string) (T, bool) {
	v, ok := m[id]
	return v, ok
}

func malformed(entity, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedRecord, entity, fmt.Sprintf(format, args...))
}

func split(entity, line, sep string, want int) ([]string, error) {
	parts := strings.Split(line, sep)
	if len(parts) < want {
		return nil, malformed(entity, "expected %d fields, got %d", want, len(parts))
	}
	return parts, nil
}

func checkText(entity, field, value string) error {
	if strings.ContainsAny(value, FieldSep+SubSep+"\r\n") {
		return fmt.Errorf("%w: %s %s %q contains a delimiter or line break", ErrUnencodableField, entity, field, value)
	}
	return nil
}

func checkTexts(entity string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := checkText(entity, pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// recordKey returns the trimmed ID of a record, the same form foreign IDs
// take before they are looked up
func recordKey(entity, value string) (string, error) {
	key := strings.TrimSpace(value)
	if key == "" {
		return "", malformed(entity, "empty id")
	}
	return key, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(entity, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, malformed(entity, "invalid %s %q", field, s)
	}
	return v, nil
}

func parseInt(entity, field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, malformed(entity, "invalid %s %q", field, s)
	}
	return v, nil
}

func parseBool(entity, field, s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, malformed(entity, "invalid %s %q", field, s)
	}
	return v, nil
}

func parseDate(entity, field, layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, malformed(entity, "invalid %s %q", field, s)
	}
	return t, nil
}

// joinIDs writes every ID followed by SubSep, e.g. "T2;T3;"
func joinIDs(ids []string) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteString(SubSep)
	}
	return b.String()
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, SubSep) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
