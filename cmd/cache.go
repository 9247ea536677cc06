package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/internal/outwriter"
	"github.com/huangsam/clonecache/internal/parquet"
	"github.com/spf13/cobra"
)

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the clone cache",
	Long: `Inspect and manage the local cache of cloned repositories.

Clonecache keeps clones under a single base directory with a metadata file
describing each entry. Both are plain files you can inspect by hand.

Subcommands:
  list   - Show cached repositories ordered by recency
  status - Show entry count, capacity, and total size
  prune  - Evict repositories unused past the staleness window
  evict  - Remove repositories by reference or LRU count
  clear  - Remove every cached repository
  export - Export cache metadata to Parquet

Examples:
  # See what is cached
  clonecache cache list

  # Reclaim disk space from stale clones
  clonecache cache prune`,
}

// cacheListCmd lists cached repositories.
var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cached repositories ordered by recency",
	Long: `List every cached repository with its clone path, size, and access times.

Entries are ordered most recently used first. The staleness label shows where
each entry sits relative to the prune window:
- Fresh:  accessed within the last day
- Active: accessed within the last week
- Aging:  accessed within the last month
- Stale:  eviction candidate for prune

Examples:
  # Human-readable table
  clonecache cache list

  # Machine-readable output for scripts
  clonecache cache list --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		entries := manager.SortedByRecency()
		slices.Reverse(entries)

		ow := outwriter.NewOutWriter()
		if err := ow.WriteEntries(entries, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot list cache entries", err)
		}
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and store locations",
	Long: `Show a summary of the clone cache.

Displays:
- Entry count against the configured capacity
- Total size of cached clones
- Oldest and newest access timestamps
- Metadata store locations (global and project scope)

Examples:
  # Check cache health
  clonecache cache status`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ow := outwriter.NewOutWriter()
		if err := ow.WriteStatus(manager.Status(), cfg); err != nil {
			contract.LogFatal("Cannot report cache status", err)
		}
	},
}

// cachePruneCmd evicts stale entries.
var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Evict repositories unused past the staleness window",
	Long: `Remove every cached repository whose last access is older than the
staleness window, regardless of how full the cache is.

The window defaults to the configured cleanup-days value and can be overridden
per invocation.

Examples:
  # Prune with the configured window
  clonecache cache prune

  # Aggressive weekly cleanup
  clonecache cache prune --cleanup-days 7`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		evicted, err := manager.EvictStale(cfg.CleanupAge)
		if err != nil {
			contract.LogFatal("Cannot prune cache", err)
		}
		fmt.Printf("Evicted %d stale repositories.\n", evicted)
	},
}

// cacheEvictCmd removes repositories by reference or by LRU count.
var cacheEvictCmd = &cobra.Command{
	Use:   "evict <repository|count>",
	Short: "Remove repositories from the cache",
	Long: `Delete cached repositories: their clones on disk and their metadata entries.

Pass a repository reference (same forms as fetch) to evict that entry, or a
number to evict that many least recently used entries. Evicting a repository
that is not cached is a no-op.

Examples:
  # Evict by shorthand
  clonecache cache evict octocat/Hello-World

  # Evict the 5 least recently used entries
  clonecache cache evict 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if n, err := strconv.Atoi(args[0]); err == nil {
			if n <= 0 {
				contract.LogFatal("Cannot evict repositories", fmt.Errorf("count must be greater than 0"))
			}
			evicted, err := manager.EvictLRU(n)
			if err != nil {
				contract.LogFatal("Cannot evict repositories", err)
			}
			fmt.Printf("Evicted %d repositories.\n", evicted)
			return
		}
		if err := manager.Remove(args[0]); err != nil {
			contract.LogFatal("Cannot evict repository", err)
		}
		fmt.Printf("Evicted %s.\n", args[0])
	},
}

// cacheClearCmd clears the whole cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached repository",
	Long: `Delete all cached clones and their metadata entries.

Use this when:
- Reclaiming all disk space used by the cache
- The cache directory was corrupted by outside tooling
- Starting fresh after changing the clone directory

Examples:
  # Wipe the cache
  clonecache cache clear`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := manager.Clear(); err != nil {
			contract.LogFatal("Cannot clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheExportCmd exports cache metadata to Parquet files.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cache metadata to Parquet for analytics",
	Long: `Export the merged cache metadata to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export cache metadata
  clonecache cache export --output-file cache.parquet

  # Query with DuckDB
  duckdb -c "SELECT key, size_bytes FROM read_parquet('cache.parquet') ORDER BY size_bytes DESC"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export cache metadata", fmt.Errorf("--output-file is required"))
		}
		records := parquet.ConvertCacheEntries(manager.SortedByRecency())
		if err := parquet.WriteCacheEntriesParquet(records, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot export cache metadata", err)
		}
		fmt.Printf("Exported %d entries to %s.\n", len(records), cfg.OutputFile)
	},
}
