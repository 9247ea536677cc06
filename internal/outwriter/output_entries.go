package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/internal/parquet"
	"github.com/huangsam/clonecache/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteEntryResults outputs cached repository entries, dispatching based on
// the output format configured. Entries are printed in the order given.
func WriteEntryResults(entries []schema.CacheEntry, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeEntryJSONResults(entries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeEntryCSVResults(entries, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeEntryParquetResults(entries, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEntryTable(entries, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeEntryJSONResults handles opening the file and calling the JSON writer.
func writeEntryJSONResults(entries []schema.CacheEntry, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForEntries(w, entries)
	}, "Wrote JSON")
}

// writeEntryCSVResults handles opening the file and calling the CSV writer.
func writeEntryCSVResults(entries []schema.CacheEntry, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"repository",
			"source_url",
			"local_path",
			"created_at",
			"last_accessed_at",
			"size_bytes",
			"label",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForEntries(csvWriter, entries)
		})
	}, "Wrote CSV")
}

// writeEntryParquetResults writes the entries as a Parquet file. Parquet is a
// seekable binary format, so a real file path is required and stdout is not
// an option.
func writeEntryParquetResults(entries []schema.CacheEntry, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	records := parquet.ConvertCacheEntries(entries)
	if err := parquet.WriteCacheEntriesParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeEntryTable generates and writes the human-readable table.
func writeEntryTable(entries []schema.CacheEntry, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Repository", "Path", "Last Accessed", "Size", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	now := time.Now()
	var data [][]string
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			e.Key,               // Repository
			contract.TruncatePath(e.LocalPath, GetMaxTablePathWidth(cfg)), // Path
			e.LastAccessedAt.Format(contract.DateTimeFormat),              // Last Accessed
			schema.FormatBytes(e.SizeBytes),                               // Size
			contract.GetColorAgeLabel(e.Age(now)),                         // Label
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	var totalSize int64
	for _, e := range entries {
		totalSize += e.SizeBytes
	}
	if _, err := fmt.Fprintf(writer, "Showing %d cached repositories (total size: %s)\n", len(entries), schema.FormatBytes(totalSize)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForEntries writes the cached entries in CSV format.
func writeCSVResultsForEntries(w *csv.Writer, entries []schema.CacheEntry) error {
	now := time.Now()
	for i, e := range entries {
		rec := []string{
			strconv.Itoa(i + 1), // Rank
			e.Key,               // Repository
			e.SourceURL,         // Source URL
			e.LocalPath,         // Local Path
			e.CreatedAt.Format(contract.DateTimeFormat),      // Created
			e.LastAccessedAt.Format(contract.DateTimeFormat), // Last Accessed
			strconv.FormatInt(e.SizeBytes, 10),               // Size in Bytes
			contract.GetPlainAgeLabel(e.Age(now)),            // Staleness Label
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForEntries writes the cached entries in JSON format.
func writeJSONResultsForEntries(w io.Writer, entries []schema.CacheEntry) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONEntryResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.CacheEntry
	}

	now := time.Now()
	output := make([]JSONEntryResult, len(entries))
	for i, e := range entries {
		output[i] = JSONEntryResult{
			Rank:       i + 1,
			Label:      contract.GetPlainAgeLabel(e.Age(now)),
			CacheEntry: e,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
