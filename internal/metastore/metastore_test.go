package metastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(key string, accessed time.Time) schema.CacheEntry {
	return schema.CacheEntry{
		Key:            key,
		SourceURL:      "https://github.com/" + key + ".git",
		LocalPath:      filepath.Join("/tmp/clones", filepath.FromSlash(key)),
		CreatedAt:      accessed,
		LastAccessedAt: accessed,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(
		filepath.Join(dir, "global", "repos.json"),
		filepath.Join(dir, "project", "repos.json"),
	)
}

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.Load())
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repos.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := New(path, "")
	assert.Empty(t, store.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)
	entries := []schema.CacheEntry{
		testEntry("octocat/Hello-World", now),
		testEntry("facebook/react", now.Add(time.Minute)),
	}

	require.NoError(t, store.Save(entries, schema.GlobalScope))

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, entries, loaded)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "deeply", "nested", "repos.json"), "")

	require.NoError(t, store.Save([]schema.CacheEntry{testEntry("a/b", time.Now())}, schema.GlobalScope))
	assert.FileExists(t, filepath.Join(dir, "deeply", "nested", "repos.json"))
}

func TestSaveUnwritablePathIsStoreUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// Parent of the store path is a regular file, so directory creation fails.
	store := New(filepath.Join(blocker, "repos.json"), "")
	err := store.Save([]schema.CacheEntry{testEntry("a/b", time.Now())}, schema.GlobalScope)
	assert.ErrorIs(t, err, contract.ErrStoreUnavailable)
}

func TestProjectScopeOverridesGlobal(t *testing.T) {
	store := newTestStore(t)
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	globalEntry := testEntry("octocat/Hello-World", old)
	require.NoError(t, store.Save([]schema.CacheEntry{globalEntry}, schema.GlobalScope))

	projectEntry := testEntry("octocat/Hello-World", fresh)
	projectEntry.LocalPath = "/project/clones/octocat/Hello-World"
	require.NoError(t, store.Save([]schema.CacheEntry{projectEntry}, schema.ProjectScope))

	loaded := store.Load()
	require.Len(t, loaded, 1, "merge by key never yields duplicates")
	assert.Equal(t, projectEntry, loaded[0])
}

func TestProjectScopeWithoutConfiguration(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "repos.json"), "")
	err := store.Save(nil, schema.ProjectScope)
	assert.Error(t, err)
}

func TestFindByKey(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.Save([]schema.CacheEntry{testEntry("a/b", now)}, schema.GlobalScope))

	entry, ok := store.FindByKey("a/b")
	require.True(t, ok)
	assert.Equal(t, "a/b", entry.Key)

	_, ok = store.FindByKey("missing/repo")
	assert.False(t, ok)
}

func TestUpsertReplacesAndAppends(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := testEntry("a/b", now)
	require.NoError(t, store.Upsert(first, schema.GlobalScope))
	require.NoError(t, store.Upsert(testEntry("c/d", now), schema.GlobalScope))

	// Replacing preserves key uniqueness.
	updated := first
	updated.LastAccessedAt = now.Add(time.Hour)
	require.NoError(t, store.Upsert(updated, schema.GlobalScope))

	loaded := store.Load()
	require.Len(t, loaded, 2)

	entry, ok := store.FindByKey("a/b")
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Hour), entry.LastAccessedAt)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.Save([]schema.CacheEntry{
		testEntry("a/b", now),
		testEntry("c/d", now),
	}, schema.GlobalScope))

	require.NoError(t, store.Remove("a/b", schema.GlobalScope))

	loaded := store.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "c/d", loaded[0].Key)

	// Removing an absent key is harmless.
	require.NoError(t, store.Remove("missing/repo", schema.GlobalScope))
	assert.Len(t, store.Load(), 1)
}

func TestSortedByRecency(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save([]schema.CacheEntry{
		testEntry("newest/repo", base.Add(2*time.Hour)),
		testEntry("oldest/repo", base),
		testEntry("tie-one/repo", base.Add(time.Hour)),
		testEntry("tie-two/repo", base.Add(time.Hour)),
	}, schema.GlobalScope))

	sorted := store.SortedByRecency()
	require.Len(t, sorted, 4)
	assert.Equal(t, "oldest/repo", sorted[0].Key)
	// Stable sort: ties keep original collection order.
	assert.Equal(t, "tie-one/repo", sorted[1].Key)
	assert.Equal(t, "tie-two/repo", sorted[2].Key)
	assert.Equal(t, "newest/repo", sorted[3].Key)
}

func TestSaveWritesInspectableJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repos.json")
	store := New(path, "")

	require.NoError(t, store.Save([]schema.CacheEntry{testEntry("a/b", time.Now())}, schema.GlobalScope))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key": "a/b"`)
}
