// Package jsonldb provides a generic, concurrent-safe, JSONL-backed table.
//
// Every row is kept in memory; the file is the durable copy. Appends are
// written in place, deletions rewrite the file through a temporary file.
package jsonldb

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// ErrNotFound is returned when no row has the requested key.
var ErrNotFound = errors.New("row not found")

// Row is implemented by types stored in a Table.
type Row[T any] interface {
	Clone() T
	Key() string
}

// Table handles storage and in-memory caching for a single JSONL file.
type Table[T Row[T]] struct {
	path string

	mu   sync.RWMutex
	rows []T
}

// NewTable creates a Table and loads all rows from path. Lines that fail to
// decode are logged and skipped so a single bad line does not lose the file.
func NewTable[T Row[T]](path string) (*Table[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: data directory
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	t := &Table[T]{path: path}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table[T]) load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.rows = []T{}
			return nil
		}
		return fmt.Errorf("failed to open table file %s: %w", t.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows := []T{}
	// Rows are unbounded; a Scanner would fail on lines over 64KiB.
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read table file %s: %w", t.path, err)
		}
		if line = bytes.TrimSpace(line); len(line) != 0 {
			var row T
			if err := json.Unmarshal(line, &row); err != nil {
				slog.Warn("Skipping undecodable row", "path", t.path, "line", lineNo, "err", err)
			} else {
				rows = append(rows, row)
			}
		}
		if err != nil {
			break
		}
	}
	t.rows = rows
	return nil
}

// All returns an iterator over clones of all rows, in insertion order.
func (t *Table[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		t.mu.RLock()
		defer t.mu.RUnlock()
		for _, row := range t.rows {
			if !yield(row.Clone()) {
				return
			}
		}
	}
}

// Get returns a clone of the row with the given key.
func (t *Table[T]) Get(key string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if row.Key() == key {
			return row.Clone(), nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Append adds a new row to the table and persists it.
func (t *Table[T]) Append(row T) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: not secret
	if err != nil {
		return fmt.Errorf("failed to open table file for append: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	t.rows = append(t.rows, row.Clone())
	return nil
}

// Delete removes the row with the given key and rewrites the file.
func (t *Table[T]) Delete(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.rows, func(row T) bool { return row.Key() == key })
	if i < 0 {
		return ErrNotFound
	}
	rows := slices.Delete(slices.Clone(t.rows), i, i+1)
	if err := t.writeLocked(rows); err != nil {
		return err
	}
	t.rows = rows
	return nil
}

func (t *Table[T]) writeLocked(rows []T) error {
	tmp := t.path + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // G304: path is owned by the table
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close table file: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace table file: %w", err)
	}
	return nil
}
