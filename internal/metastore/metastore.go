// Package metastore persists cache-entry records as human-inspectable JSON
// files at a global scope and an optional project scope.
package metastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
)

// Store is a durable mapping from cache key to CacheEntry. It keeps no
// in-process state: every mutation re-reads the files so correctness depends
// only on the freshest on-disk view. Store operations are infrequent relative
// to clone operations, so the extra read per mutation is acceptable.
//
// The files are not guarded against concurrent external processes; the
// intended deployment is a single active process per cache.
type Store struct {
	globalPath  string
	projectPath string // empty when no project scope is configured
}

// New creates a store over the given scope file locations. projectPath may be
// empty to disable the project scope.
func New(globalPath, projectPath string) *Store {
	return &Store{globalPath: globalPath, projectPath: projectPath}
}

// GlobalPath returns the global-scope file location.
func (s *Store) GlobalPath() string { return s.globalPath }

// ProjectPath returns the project-scope file location, empty if unset.
func (s *Store) ProjectPath() string { return s.projectPath }

// scopePath resolves a scope to its file location.
func (s *Store) scopePath(scope schema.StoreScope) (string, error) {
	switch scope {
	case schema.GlobalScope:
		return s.globalPath, nil
	case schema.ProjectScope:
		if s.projectPath == "" {
			return "", errors.New("no project scope configured")
		}
		return s.projectPath, nil
	default:
		return "", fmt.Errorf("unknown store scope: %s", scope)
	}
}

// loadScope reads one scope file. A missing or unparseable file is treated as
// an empty collection rather than an error, because an empty cache is always
// a safe, recoverable state. Parse failures are logged so the user can
// inspect or delete the file by hand.
func loadScope(path string) []schema.CacheEntry {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			contract.LogWarn(fmt.Sprintf("cannot read cache metadata at %s, treating as empty", path), err)
		}
		return nil
	}
	var entries []schema.CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		contract.LogWarn(fmt.Sprintf("corrupt cache metadata at %s, treating as empty", path), err)
		return nil
	}
	return entries
}

// Load returns the merged collection: global-scope entries first, with
// project-scope entries overriding global entries of the same key.
func (s *Store) Load() []schema.CacheEntry {
	merged := loadScope(s.globalPath)
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.Key] = i
	}
	for _, e := range loadScope(s.projectPath) {
		if i, ok := index[e.Key]; ok {
			merged[i] = e
			continue
		}
		index[e.Key] = len(merged)
		merged = append(merged, e)
	}
	return merged
}

// Save serializes the collection to the given scope's file, creating missing
// parent directories first. The content lands via a temp-file rename so a
// crash mid-write leaves either the previous version or nothing.
func (s *Store) Save(entries []schema.CacheEntry, scope schema.StoreScope) error {
	path, err := s.scopePath(scope)
	if err != nil {
		return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: cannot create %s: %v", contract.ErrStoreUnavailable, filepath.Dir(path), err)
	}

	if entries == nil {
		entries = []schema.CacheEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: cannot encode cache metadata: %v", contract.ErrStoreUnavailable, err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: cannot write %s: %v", contract.ErrStoreUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: cannot replace %s: %v", contract.ErrStoreUnavailable, path, err)
	}
	return nil
}

// FindByKey returns the entry with the given key from the merged view.
func (s *Store) FindByKey(key string) (schema.CacheEntry, bool) {
	for _, e := range s.Load() {
		if e.Key == key {
			return e, true
		}
	}
	return schema.CacheEntry{}, false
}

// Upsert loads the current merged collection, replaces the entry sharing
// entry.Key (or appends if absent), and saves at the given scope.
func (s *Store) Upsert(entry schema.CacheEntry, scope schema.StoreScope) error {
	entries := s.Load()
	replaced := false
	for i, e := range entries {
		if e.Key == entry.Key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return s.Save(entries, scope)
}

// Remove loads the merged collection, filters out the matching key, and saves
// at the given scope.
func (s *Store) Remove(key string, scope schema.StoreScope) error {
	entries := s.Load()
	kept := entries[:0]
	for _, e := range entries {
		if e.Key != key {
			kept = append(kept, e)
		}
	}
	return s.Save(kept, scope)
}

// SortedByRecency returns the merged collection ordered ascending by
// LastAccessedAt (least recently used first). Ties keep their original
// collection order.
func (s *Store) SortedByRecency() []schema.CacheEntry {
	entries := s.Load()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastAccessedAt.Before(entries[j].LastAccessedAt)
	})
	return entries
}
