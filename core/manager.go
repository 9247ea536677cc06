// Package core implements the cache lifecycle: lookup, validation, capacity
// enforcement, clone invocation, and eviction.
package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/internal/metastore"
	"github.com/huangsam/clonecache/internal/repourl"
	"github.com/huangsam/clonecache/schema"
	"golang.org/x/sync/singleflight"
)

// Manager coordinates the metadata store, the clone collaborator, and the
// filesystem. Operations against the same key are serialized per process via
// single-flight so overlapping Acquire calls share one clone instead of
// racing to write the same target path. Cross-process coordination is out of
// scope: one active process owns a cache.
type Manager struct {
	cfg   *contract.Config
	store *metastore.Store
	git   contract.GitClient
	group singleflight.Group
}

// NewManager creates a lifecycle manager over the given configuration,
// metadata store, and clone collaborator.
func NewManager(cfg *contract.Config, store *metastore.Store, git contract.GitClient) *Manager {
	return &Manager{cfg: cfg, store: store, git: git}
}

// writeScope returns the scope mutations target: the project scope when one
// is configured, the global scope otherwise.
func (m *Manager) writeScope() schema.StoreScope {
	if m.cfg.ProjectDir != "" {
		return schema.ProjectScope
	}
	return schema.GlobalScope
}

// Acquire resolves a raw repository reference to a local clone path, fetching
// the repository if it is not already cached. A cache hit refreshes the
// entry's recency; a miss (or an entry whose clone was removed out-of-band)
// enforces capacity and performs a fresh shallow clone.
func (m *Manager) Acquire(ctx context.Context, rawRef string) (string, error) {
	ref, ok := repourl.Parse(rawRef)
	if !ok {
		return "", fmt.Errorf("%w: cannot parse %q (supported forms: %s)",
			contract.ErrInvalidReference, rawRef, repourl.SupportedForms)
	}
	if err := repourl.Validate(ref); err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrInvalidReference, err)
	}

	path, err, _ := m.group.Do(ref.Key(), func() (any, error) {
		return m.acquire(ctx, ref)
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

// acquire runs after reference validation, at most once concurrently per key.
func (m *Manager) acquire(ctx context.Context, ref repourl.Reference) (string, error) {
	now := time.Now()

	if entry, found := m.store.FindByKey(ref.Key()); found {
		if validateClone(entry.LocalPath) {
			entry.LastAccessedAt = now
			if err := m.store.Upsert(entry, m.writeScope()); err != nil {
				return "", err
			}
			return entry.LocalPath, nil
		}
		// The clone went missing or is corrupt: a recoverable inconsistency,
		// treated as a miss. The stale record and any leftover content must
		// be fully removed before re-fetching into the same target path.
		if err := m.deleteEntry(entry); err != nil {
			return "", err
		}
	}

	if err := m.enforceCapacity(); err != nil {
		return "", err
	}

	target := filepath.Join(m.cfg.CloneDir, ref.Owner, ref.Repo)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("%w: cannot create %s: %v", contract.ErrFetchFailed, filepath.Dir(target), err)
	}

	if err := m.git.CloneShallow(ctx, ref.CloneURL(), target, m.cfg.CloneDepth); err != nil {
		// Never leave a partial clone behind.
		_ = os.RemoveAll(target)
		return "", fmt.Errorf("%w: %v", contract.ErrFetchFailed, err)
	}
	if !validateClone(target) {
		_ = os.RemoveAll(target)
		return "", fmt.Errorf("%w: clone of %s did not produce a usable repository", contract.ErrFetchFailed, ref.CloneURL())
	}

	entry := schema.CacheEntry{
		Key:            ref.Key(),
		SourceURL:      ref.CloneURL(),
		LocalPath:      target,
		CreatedAt:      now,
		LastAccessedAt: now,
		SizeBytes:      dirSize(target),
	}
	if err := m.store.Upsert(entry, m.writeScope()); err != nil {
		return "", err
	}
	return target, nil
}

// enforceCapacity evicts least-recently-used entries so that the pending
// insertion keeps the count within the configured maximum. It always runs
// before a clone, never after, so the cache never transiently exceeds its
// capacity by more than the eviction could avoid.
func (m *Manager) enforceCapacity() error {
	entries := m.store.Load()
	if len(entries) < m.cfg.MaxClones {
		return nil
	}
	_, err := m.EvictLRU(len(entries) - m.cfg.MaxClones + 1)
	return err
}

// EvictLRU removes the n oldest-by-recency entries and their clones. It
// returns the number of entries actually evicted.
func (m *Manager) EvictLRU(n int) (int, error) {
	entries := m.store.SortedByRecency()
	if n > len(entries) {
		n = len(entries)
	}
	evicted := 0
	for _, entry := range entries[:n] {
		if err := m.deleteEntry(entry); err != nil {
			return evicted, err
		}
		evicted++
	}
	return evicted, nil
}

// EvictStale removes every entry whose last access is older than maxAge,
// regardless of count. It returns the number of entries evicted.
func (m *Manager) EvictStale(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	evicted := 0
	for _, entry := range m.store.Load() {
		if !entry.LastAccessedAt.Before(cutoff) {
			continue
		}
		if err := m.deleteEntry(entry); err != nil {
			return evicted, err
		}
		evicted++
	}
	return evicted, nil
}

// Remove explicitly deletes a single cached repository by reference. Removing
// a reference that is not cached is a no-op.
func (m *Manager) Remove(rawRef string) error {
	ref, ok := repourl.Parse(rawRef)
	if !ok {
		return fmt.Errorf("%w: cannot parse %q (supported forms: %s)",
			contract.ErrInvalidReference, rawRef, repourl.SupportedForms)
	}
	if err := repourl.Validate(ref); err != nil {
		return fmt.Errorf("%w: %v", contract.ErrInvalidReference, err)
	}
	entry, found := m.store.FindByKey(ref.Key())
	if !found {
		return nil
	}
	return m.deleteEntry(entry)
}

// Clear removes every cached entry and its clone.
func (m *Manager) Clear() error {
	for _, entry := range m.store.Load() {
		if err := m.deleteEntry(entry); err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns the full merged collection with no ordering guarantee;
// callers sort as needed. Inspection only, no side effects.
func (m *Manager) ListAll() []schema.CacheEntry {
	return m.store.Load()
}

// SortedByRecency returns the collection ordered least recently used first.
func (m *Manager) SortedByRecency() []schema.CacheEntry {
	return m.store.SortedByRecency()
}

// Status summarizes the cache for inspection and reporting.
func (m *Manager) Status() schema.CacheStatus {
	entries := m.store.SortedByRecency()
	status := schema.CacheStatus{
		TotalEntries:     len(entries),
		MaxEntries:       m.cfg.MaxClones,
		GlobalStorePath:  m.store.GlobalPath(),
		ProjectStorePath: m.store.ProjectPath(),
	}
	for _, entry := range entries {
		status.TotalSizeBytes += entry.SizeBytes
	}
	if len(entries) > 0 {
		status.OldestAccessTime = entries[0].LastAccessedAt
		status.NewestAccessTime = entries[len(entries)-1].LastAccessedAt
	}
	return status
}

// deleteEntry removes the clone from disk, then the record from every scope
// that may hold it, as one logical operation. If clone removal fails the
// record stays: an entry pointing at nothing would present to callers as
// "cached" when it is not retrievable.
func (m *Manager) deleteEntry(entry schema.CacheEntry) error {
	if entry.LocalPath != "" {
		if _, err := os.Stat(entry.LocalPath); err == nil {
			if err := os.RemoveAll(entry.LocalPath); err != nil {
				return fmt.Errorf("%w: cannot remove %s: %v", contract.ErrDeletionFailed, entry.LocalPath, err)
			}
		}
	}
	if err := m.store.Remove(entry.Key, schema.GlobalScope); err != nil {
		return err
	}
	if m.store.ProjectPath() != "" {
		return m.store.Remove(entry.Key, schema.ProjectScope)
	}
	return nil
}

// validateClone reports whether path holds a usable clone: the directory
// exists, contains version-control metadata, and has at least one ordinary
// file at its root besides that metadata.
func validateClone(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return false
	}
	items, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, item := range items {
		if item.Name() == ".git" {
			continue
		}
		if item.Type().IsRegular() {
			return true
		}
	}
	return false
}

// dirSize sums regular file sizes under path. Best effort: unreadable files
// are skipped and the result is advisory only.
func dirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
