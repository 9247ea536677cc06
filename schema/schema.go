// Package schema has configs, models and shared types for all parts of clonecache.
package schema

import "time"

// CacheEntry is a single cached repository record. One entry exists per cache
// key, and an entry exists only while its clone is expected to be present on
// disk at LocalPath.
type CacheEntry struct {
	Key            string    `json:"key"`                 // Canonical "owner/repo" identifier
	SourceURL      string    `json:"sourceUrl"`           // Canonical HTTPS clone URL
	LocalPath      string    `json:"localPath"`           // Filesystem location of the clone
	CreatedAt      time.Time `json:"createdAt"`           // Set once at first successful clone
	LastAccessedAt time.Time `json:"lastAccessedAt"`      // Updated on every cache hit; drives LRU order
	SizeBytes      int64     `json:"sizeBytes,omitempty"` // Advisory disk usage, best effort
}

// Age returns how long ago the entry was last accessed.
func (e CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.LastAccessedAt)
}
