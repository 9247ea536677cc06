// Package contract provides interfaces and shared utilities for the clonecache CLI's internal architecture.
package contract

import "context"

// GitClient defines the necessary operations for fetching remote repositories.
// This allows the cache lifecycle logic to be tested without needing a real
// git executable or network access.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, workDir string, args ...string) ([]byte, error)

	// CloneShallow performs a shallow clone of url into targetPath with the
	// given history depth. It succeeds only if targetPath ends up containing
	// the repository metadata and content.
	CloneShallow(ctx context.Context, url, targetPath string, depth int) error
}
