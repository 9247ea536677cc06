package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/clonecache/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockCacheEntryRecords() []CacheEntryRecord {
	now := time.Now()
	size1 := int64(2048)
	size2 := int64(131072)

	return []CacheEntryRecord{
		{
			Key:            "octocat/Hello-World",
			SourceURL:      "https://github.com/octocat/Hello-World.git",
			LocalPath:      "/home/user/.clonecache/repos/octocat/Hello-World",
			CreatedAt:      now.Add(-48 * time.Hour),
			LastAccessedAt: now.Add(-1 * time.Hour),
			SizeBytes:      &size1,
		},
		{
			Key:            "golang/go",
			SourceURL:      "https://github.com/golang/go.git",
			LocalPath:      "/home/user/.clonecache/repos/golang/go",
			CreatedAt:      now.Add(-30 * 24 * time.Hour),
			LastAccessedAt: now.Add(-10 * 24 * time.Hour),
			SizeBytes:      &size2,
		},
		{
			Key:            "owner/fresh",
			SourceURL:      "https://github.com/owner/fresh.git",
			LocalPath:      "/home/user/.clonecache/repos/owner/fresh",
			CreatedAt:      now,
			LastAccessedAt: now,
			SizeBytes:      nil, // Size not measured - nullable field
		},
	}
}

func TestCacheEntryRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	entrySchema := parquet.SchemaOf(new(CacheEntryRecord))
	require.NotNil(t, entrySchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"key",
		"source_url",
		"local_path",
		"created_at",
		"last_accessed_at",
		"size_bytes",
	}

	for _, colName := range expectedColumns {
		col, ok := entrySchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteCacheEntriesParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "cache_entries.parquet")

	data := mockCacheEntryRecords()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteCacheEntriesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[CacheEntryRecord](file)
	defer reader.Close()

	// Read all rows
	readData := make([]CacheEntryRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Key, readData[i].Key, "Key should match")
		assert.Equal(t, data[i].SourceURL, readData[i].SourceURL, "SourceURL should match")
		assert.Equal(t, data[i].LocalPath, readData[i].LocalPath, "LocalPath should match")
		assert.WithinDuration(t, data[i].CreatedAt, readData[i].CreatedAt, time.Nanosecond, "CreatedAt should match within nanosecond precision")
		assert.WithinDuration(t, data[i].LastAccessedAt, readData[i].LastAccessedAt, time.Nanosecond, "LastAccessedAt should match within nanosecond precision")

		// Check nullable SizeBytes field
		if data[i].SizeBytes == nil {
			assert.Nil(t, readData[i].SizeBytes, "SizeBytes should be nil")
		} else {
			require.NotNil(t, readData[i].SizeBytes, "SizeBytes should not be nil")
			assert.Equal(t, *data[i].SizeBytes, *readData[i].SizeBytes, "SizeBytes should match")
		}
	}
}

func TestWriteCacheEntriesParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_cache_entries.parquet")

	// Write empty data
	err := WriteCacheEntriesParquet([]CacheEntryRecord{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteCacheEntriesParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := mockCacheEntryRecords()
	err := WriteCacheEntriesParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertCacheEntries(t *testing.T) {
	now := time.Now()
	entries := []schema.CacheEntry{
		{
			Key:            "owner/sized",
			SourceURL:      "https://github.com/owner/sized.git",
			LocalPath:      "/tmp/clones/owner/sized",
			CreatedAt:      now.Add(-time.Hour),
			LastAccessedAt: now,
			SizeBytes:      4096,
		},
		{
			Key:            "owner/unsized",
			SourceURL:      "https://github.com/owner/unsized.git",
			LocalPath:      "/tmp/clones/owner/unsized",
			CreatedAt:      now,
			LastAccessedAt: now,
			SizeBytes:      0,
		},
	}

	records := ConvertCacheEntries(entries)
	require.Len(t, records, 2)

	assert.Equal(t, "owner/sized", records[0].Key)
	require.NotNil(t, records[0].SizeBytes, "Measured size should carry over")
	assert.Equal(t, int64(4096), *records[0].SizeBytes)

	assert.Equal(t, "owner/unsized", records[1].Key)
	assert.Nil(t, records[1].SizeBytes, "Unmeasured size should become nil")
}
