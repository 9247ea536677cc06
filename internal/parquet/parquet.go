// Package parquet provides data structures and functions for exporting cache
// metadata to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/clonecache/schema"
	"github.com/parquet-go/parquet-go"
)

// CacheEntryRecord represents a single cached repository in the export format.
// Columnar snapshots of the cache are useful for fleet-wide usage analysis.
type CacheEntryRecord struct {
	// Key is the normalized owner/repo identity of the entry
	Key string `parquet:"key,snappy"`

	// SourceURL is the canonical clone URL the entry was fetched from
	SourceURL string `parquet:"source_url,snappy"`

	// LocalPath is the absolute path of the clone on disk
	LocalPath string `parquet:"local_path,snappy"`

	// CreatedAt is when the clone was first fetched (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// LastAccessedAt is when the entry was last acquired (stored as TIMESTAMP with nanosecond precision)
	LastAccessedAt time.Time `parquet:"last_accessed_at,snappy"`

	// SizeBytes is the advisory on-disk size of the clone (nullable)
	SizeBytes *int64 `parquet:"size_bytes,optional,snappy"`
}

// WriteCacheEntriesParquet writes a slice of CacheEntryRecord structs to a Parquet file.
func WriteCacheEntriesParquet(data []CacheEntryRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CacheEntryRecord struct tags
	writer := parquet.NewGenericWriter[CacheEntryRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertCacheEntries converts schema.CacheEntry to CacheEntryRecord for Parquet export.
func ConvertCacheEntries(entries []schema.CacheEntry) []CacheEntryRecord {
	result := make([]CacheEntryRecord, len(entries))
	for i, entry := range entries {
		record := CacheEntryRecord{
			Key:            entry.Key,
			SourceURL:      entry.SourceURL,
			LocalPath:      entry.LocalPath,
			CreatedAt:      entry.CreatedAt,
			LastAccessedAt: entry.LastAccessedAt,
		}
		if entry.SizeBytes > 0 {
			size := entry.SizeBytes
			record.SizeBytes = &size
		}
		result[i] = record
	}
	return result
}
