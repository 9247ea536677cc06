package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Staleness label constants.
const (
	FreshValue  = "Fresh"  // Accessed within the last day
	ActiveValue = "Active" // Accessed within the last week
	AgingValue  = "Aging"  // Accessed within the last month
	StaleValue  = "Stale"  // Not accessed for a month or more
)

// Color variables for console output.
var (
	FreshColor  = color.New(color.FgGreen)           // FreshColor marks a recently used entry.
	ActiveColor = color.New(color.FgCyan)            // ActiveColor marks a regularly used entry.
	AgingColor  = color.New(color.FgYellow)          // AgingColor marks standard caution, not bold.
	StaleColor  = color.New(color.FgRed, color.Bold) // StaleColor marks an eviction candidate.
)

// GetPlainAgeLabel returns a plain text label for how long ago an entry was
// last accessed. This is the core logic used for CSV, JSON, and table printing.
func GetPlainAgeLabel(age time.Duration) string {
	switch {
	case age >= 30*24*time.Hour:
		return StaleValue
	case age >= 7*24*time.Hour:
		return AgingValue
	case age >= 24*time.Hour:
		return ActiveValue
	default:
		return FreshValue
	}
}

// GetColorAgeLabel returns a colored text label for console output (table).
// It uses GetPlainAgeLabel to determine the string, and then applies the
// appropriate color.
func GetColorAgeLabel(age time.Duration) string {
	text := GetPlainAgeLabel(age)

	switch text {
	case StaleValue:
		return StaleColor.Sprint(text)
	case AgingValue:
		return AgingColor.Sprint(text)
	case ActiveValue:
		return ActiveColor.Sprint(text)
	default: // "Fresh"
		return FreshColor.Sprint(text)
	}
}

// ExpandHome resolves a leading "~" or "~/" in path against the user's home
// directory. Paths without the shorthand are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// GlobalStorePath returns the path to the global-scope metadata file under
// the user's home directory.
func GlobalStorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".clonecache", "repos.json")
	}
	return filepath.Join(homeDir, ".clonecache", "repos.json")
}

// ProjectStorePath returns the path to the project-scope metadata file under
// the given project root.
func ProjectStorePath(projectDir string) string {
	return filepath.Join(projectDir, ".clonecache", "repos.json")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
