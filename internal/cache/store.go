package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the default cache file name, stored inside the .git directory
const FileName = "gb_cache.json"

const keySeparator = ".."

// RangeKey identifies a directed ancestry query: commits reachable from To
// that are not reachable from From.
type RangeKey struct {
	From string
	To   string
}

// NewRangeKey creates a RangeKey for from..to
func NewRangeKey(from, to string) RangeKey {
	return RangeKey{From: from, To: to}
}

// String returns the serialized "from..to" form
func (k RangeKey) String() string {
	return k.From + keySeparator + k.To
}

// IsEmptyRange reports whether both ends are the same commit, in which case
// the count is always zero.
func (k RangeKey) IsEmptyRange() bool {
	return k.From == k.To
}

// ParseRangeKey parses a "from..to" string
func ParseRangeKey(s string) (RangeKey, error) {
	from, to, ok := strings.Cut(s, keySeparator)
	if !ok || from == "" || to == "" || strings.Contains(to, keySeparator) {
		return RangeKey{}, fmt.Errorf("invalid range key %q", s)
	}
	return RangeKey{From: from, To: to}, nil
}

// Store maps range keys to commit counts
type Store struct {
	counts map[string]int
	dirty  bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{counts: make(map[string]int)}
}

// Get returns the cached count for key, if present
func (s *Store) Get(key RangeKey) (int, bool) {
	v, ok := s.counts[key.String()]
	return v, ok
}

// Set records a count for key. Negative counts are ignored.
func (s *Store) Set(key RangeKey, value int) {
	if value < 0 {
		return
	}
	if old, ok := s.counts[key.String()]; ok && old == value {
		return
	}
	s.counts[key.String()] = value
	s.dirty = true
}

// Len returns the number of cached ranges
func (s *Store) Len() int {
	return len(s.counts)
}

// Dirty reports whether the store changed since it was loaded
func (s *Store) Dirty() bool {
	return s.dirty
}

// Load reads a store from path. A missing, unreadable or malformed file
// yields an empty store; Load never fails. Entries with a malformed key or a
// negative count are dropped.
func Load(path string) *Store {
	store, _ := load(path)
	return store
}

// LoadWithError is Load, but also reports why the file was discarded.
// The returned store is always usable.
func LoadWithError(path string) (*Store, error) {
	return load(path)
}

func load(path string) (*Store, error) {
	store := NewStore()
	if path == "" {
		return store, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return store, fmt.Errorf("failed to read cache: %w", err)
	}

	raw := make(map[string]int)
	if err := json.Unmarshal(data, &raw); err != nil {
		return store, fmt.Errorf("failed to parse cache: %w", err)
	}

	for k, v := range raw {
		if v < 0 {
			continue
		}
		if _, err := ParseRangeKey(k); err != nil {
			continue
		}
		store.counts[k] = v
	}
	return store, nil
}

// Dump writes the whole store to path, replacing any existing file
func (s *Store) Dump(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// encoding/json sorts map keys, so the file is stable across runs
	data, err := json.MarshalIndent(s.counts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	s.dirty = false
	return nil
}

// Clear removes the cache file at path. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
