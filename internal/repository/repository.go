// Package repository keeps one entity collection in memory and persists it to
// a line-oriented file through a codec.
package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"rental-records/internal/codec"
	"rental-records/internal/linestore"
)

// Config describes one entity collection
type Config[T any] struct {
	// Name is used in log and error messages, e.g. "tenant"
	Name string
	// Prefix is the conventional ID prefix, e.g. "T" or "CP"
	Prefix string
	// Path is the backing file
	Path  string
	Key   func(T) string
	Codec codec.Codec[T]
	// CustomerKeys returns the tenant IDs a record belongs to. Nil means the
	// entity has no customer relation.
	CustomerKeys func(T) []string
	// Clone copies any slices held by a record. Nil means T is copied by value.
	Clone func(T) T
	// CreateMissing creates an empty backing file when Load finds none
	CreateMissing bool
}

// Repository is an ordered, key-unique collection of records
type Repository[T any] struct {
	cfg     Config[T]
	store   *linestore.Store
	logger  *slog.Logger
	idRegex *regexp.Regexp

	items []T
	index map[string]int
}

// New creates an empty repository
func New[T any](cfg Config[T], store *linestore.Store, logger *slog.Logger) *Repository[T] {
	if store == nil {
		store = linestore.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository[T]{
		cfg:     cfg,
		store:   store,
		logger:  logger.With("entity", cfg.Name),
		idRegex: regexp.MustCompile(`^` + regexp.QuoteMeta(cfg.Prefix) + `\d+$`),
		index:   make(map[string]int),
	}
}

// Name returns the entity name
func (r *Repository[T]) Name() string { return r.cfg.Name }

// Prefix returns the ID prefix
func (r *Repository[T]) Prefix() string { return r.cfg.Prefix }

// Path returns the backing file
func (r *Repository[T]) Path() string { return r.cfg.Path }

// Key returns the key of item
func (r *Repository[T]) Key(item T) string { return r.cfg.Key(item) }

func (r *Repository[T]) clone(item T) T {
	if r.cfg.Clone == nil {
		return item
	}
	return r.cfg.Clone(item)
}

func (r *Repository[T]) reindex() {
	clear(r.index)
	for i, item := range r.items {
		r.index[r.cfg.Key(item)] = i
	}
}

// Add appends item to the collection. It does not write the file.
func (r *Repository[T]) Add(item T) error {
	key := r.cfg.Key(item)
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s: %w", r.cfg.Name, ErrEmptyKey)
	}
	if _, ok := r.index[key]; ok {
		return fmt.Errorf("%s %s: %w", r.cfg.Name, key, ErrDuplicateKey)
	}
	r.index[key] = len(r.items)
	r.items = append(r.items, r.clone(item))
	return nil
}

// Update replaces the record with the same key and saves the file. If the
// save fails the previous record is restored.
func (r *Repository[T]) Update(item T) error {
	key := r.cfg.Key(item)
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%s %s: %w", r.cfg.Name, key, ErrNotFound)
	}
	old := r.items[i]
	r.items[i] = r.clone(item)
	if err := r.Save(); err != nil {
		r.items[i] = old
		return err
	}
	return nil
}

// Remove deletes the record with key and saves the file. If the save fails
// the record is put back.
func (r *Repository[T]) Remove(key string) error {
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%s %s: %w", r.cfg.Name, key, ErrNotFound)
	}
	prev := r.items
	r.items = slices.Delete(slices.Clone(r.items), i, i+1)
	r.reindex()
	if err := r.Save(); err != nil {
		r.items = prev
		r.reindex()
		return err
	}
	return nil
}

// Get returns a copy of the record with key
func (r *Repository[T]) Get(key string) (T, bool) {
	i, ok := r.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return r.clone(r.items[i]), true
}

// Has reports whether a record with key exists
func (r *Repository[T]) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// All returns a copy of the collection in its current order
func (r *Repository[T]) All() []T {
	out := make([]T, len(r.items))
	for i, item := range r.items {
		out[i] = r.clone(item)
	}
	return out
}

// IDs returns the keys in collection order
func (r *Repository[T]) IDs() []string {
	ids := make([]string, len(r.items))
	for i, item := range r.items {
		ids[i] = r.cfg.Key(item)
	}
	return ids
}

// Len returns the number of records
func (r *Repository[T]) Len() int { return len(r.items) }

// ByCustomerID returns the records that belong to the given tenant
func (r *Repository[T]) ByCustomerID(tenantID string) []T {
	var out []T
	if r.cfg.CustomerKeys == nil {
		return out
	}
	for _, item := range r.items {
		if slices.Contains(r.cfg.CustomerKeys(item), tenantID) {
			out = append(out, r.clone(item))
		}
	}
	return out
}

// Filter returns the records for which keep returns true
func (r *Repository[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, item := range r.items {
		if keep(item) {
			out = append(out, r.clone(item))
		}
	}
	return out
}

// SortByID reorders the collection by the numeric part of each key
func (r *Repository[T]) SortByID() {
	slices.SortStableFunc(r.items, func(a, b T) int {
		return compareIDs(r.cfg.Prefix, r.cfg.Key(a), r.cfg.Key(b))
	})
	r.reindex()
}

// ValidateID reports whether id is the prefix followed by digits
func (r *Repository[T]) ValidateID(id string) bool {
	return r.idRegex.MatchString(id)
}

// Encode returns the file lines for the current collection
func (r *Repository[T]) Encode() ([]string, error) {
	lines := make([]string, 0, len(r.items))
	for _, item := range r.items {
		line, err := r.cfg.Codec.Encode(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s: %w", r.cfg.Name, r.cfg.Key(item), err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Save writes the collection to the backing file
func (r *Repository[T]) Save() error {
	return r.SaveTo(r.cfg.Path)
}

// SaveTo writes the collection to path, replacing its content. Nothing is
// written when any record fails to encode.
func (r *Repository[T]) SaveTo(path string) error {
	lines, err := r.Encode()
	if err != nil {
		return err
	}
	if err := r.store.WriteLines(path, lines); err != nil {
		return err
	}
	r.logger.Debug("saved records", "file", path, "count", len(lines))
	return nil
}

// SaveBackup writes the collection to a file other than the backing file
func (r *Repository[T]) SaveBackup(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s: empty backup file name", r.cfg.Name)
	}
	if err := r.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save %s backup: %w", r.cfg.Name, err)
	}
	r.logger.Info("saved backup", "file", path, "count", len(r.items))
	return nil
}

// Load replaces the collection with the content of the backing file
func (r *Repository[T]) Load() (LoadReport, error) {
	return r.LoadFrom(r.cfg.Path)
}

// LoadFrom replaces the collection with the content of path. Lines that fail
// to decode, or repeat a key, are skipped, logged and listed in the report.
// A missing file gives an empty collection.
func (r *Repository[T]) LoadFrom(path string) (LoadReport, error) {
	report := LoadReport{Path: path}
	var (
		items []T
		seen  = make(map[string]struct{})
		n     int
	)
	for line, err := range r.store.Lines(path) {
		if errors.Is(err, linestore.ErrNotFound) {
			report.Missing = true
			break
		}
		if err != nil {
			return report, err
		}
		n++
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, err := r.cfg.Codec.Decode(line)
		if err == nil {
			key := r.cfg.Key(item)
			if _, dup := seen[key]; dup {
				err = fmt.Errorf("%s %s: %w", r.cfg.Name, key, ErrDuplicateKey)
			} else {
				seen[key] = struct{}{}
			}
		}
		if err != nil {
			report.Skipped = append(report.Skipped, LineError{Line: n, Text: line, Err: err})
			r.logger.Warn("skipping record", "file", path, "line", n, "error", err)
			continue
		}
		items = append(items, item)
	}

	if report.Missing {
		r.logger.Info("record file not found", "file", path)
		if r.cfg.CreateMissing {
			if err := r.store.Create(path); err != nil {
				return report, err
			}
		}
	}

	r.items = items
	r.reindex()
	report.Loaded = len(items)
	return report, nil
}
