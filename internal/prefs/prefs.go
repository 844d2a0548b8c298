// Package prefs is a small persistent key/value store of JSON values.
//
// It plays the role the browser's localStorage plays for the CRM front end:
// a flat JSON object on disk, one raw JSON value per key.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Well known keys.
const (
	// KeyProjectUpvotes holds a JSON object mapping project id to vote count.
	KeyProjectUpvotes = "projectUpvotes"
	// KeyNavigationHidden holds a JSON boolean.
	KeyNavigationHidden = "navigation-hidden"
)

// Store is a JSON file backed key/value store. It is safe for concurrent use.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// Open loads the store at path. A missing file yields an empty store. A
// corrupt file is logged and treated as empty; it is overwritten on the next
// Set.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: data directory
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	s := &Store{path: path, values: map[string]json.RawMessage{}}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the data-dir flag
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		slog.Warn("Ignoring corrupt preference file", "path", path, "err", err)
		s.values = map[string]json.RawMessage{}
	}
	return s, nil
}

// Raw returns a copy of the raw JSON stored under key, or nil.
func (s *Store) Raw(key string) json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil
	}
	return slices.Clone(v)
}

// Get decodes the value stored under key into dst. It returns false when the
// key is absent.
func (s *Store) Get(key string, dst any) (bool, error) {
	raw := s.Raw(key)
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// Set encodes value and persists it under key.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = raw
	if err := s.flushLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Update runs fn on the current value of key under the store lock and
// persists what fn leaves in v. v must be a pointer.
func (s *Store) Update(key string, v any, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if raw, ok := s.values[key]; ok {
		if err := json.Unmarshal(raw, v); err != nil {
			slog.Warn("Resetting undecodable preference", "key", key, "err", err)
		}
	}
	if err := fn(); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	prev, had := s.values[key]
	s.values[key] = raw
	if err := s.flushLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// flushLocked writes the whole store through a temporary file and a rename.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil { //nolint:gosec // G306: not secret
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
