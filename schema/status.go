package schema

import "time"

// CacheStatus summarizes the state of the clone cache for inspection.
type CacheStatus struct {
	TotalEntries     int       `json:"totalEntries"`     // Number of entries in the merged view
	MaxEntries       int       `json:"maxEntries"`       // Configured capacity
	OldestAccessTime time.Time `json:"oldestAccessTime"` // Least recently used entry's access time
	NewestAccessTime time.Time `json:"newestAccessTime"` // Most recently used entry's access time
	TotalSizeBytes   int64     `json:"totalSizeBytes"`   // Sum of advisory entry sizes
	GlobalStorePath  string    `json:"globalStorePath"`  // Location of the global metadata file
	ProjectStorePath string    `json:"projectStorePath"` // Location of the project metadata file, empty if unset
}
