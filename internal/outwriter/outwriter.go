// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEntries prints cached repository entries using the configured output format.
func (ow *OutWriter) WriteEntries(entries []schema.CacheEntry, cfg *contract.Config, duration time.Duration) error {
	return WriteEntryResults(entries, cfg, duration)
}

// WriteStatus prints a cache summary using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.CacheStatus, cfg *contract.Config) error {
	return WriteStatusResult(status, cfg)
}

// GetMaxTablePathWidth calculates the maximum width for clone paths in table
// output based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Rank + Repository + Last Accessed + Size + Label, borders and padding.
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
