package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
)

// WriteStatusResult outputs a cache summary, dispatching based on the output
// format configured. CSV falls back to plain text since the summary is a
// single record, not a series.
func WriteStatusResult(status schema.CacheStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.ParquetOut:
		// A single summary record has no columnar value.
		return fmt.Errorf("parquet output is not supported for status")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusText(status, w)
		}, "Wrote status")
	}
}

// writeStatusText prints the human-readable summary.
func writeStatusText(status schema.CacheStatus, w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Total Entries: %d / %d", status.TotalEntries, status.MaxEntries),
		fmt.Sprintf("Total Size: %s", schema.FormatBytes(status.TotalSizeBytes)),
	}
	if status.TotalEntries > 0 {
		lines = append(lines,
			fmt.Sprintf("Oldest Access: %s", status.OldestAccessTime.Format(contract.DateTimeFormat)),
			fmt.Sprintf("Newest Access: %s", status.NewestAccessTime.Format(contract.DateTimeFormat)),
		)
	}
	lines = append(lines, fmt.Sprintf("Global Store: %s", status.GlobalStorePath))
	if status.ProjectStorePath != "" {
		lines = append(lines, fmt.Sprintf("Project Store: %s", status.ProjectStorePath))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
