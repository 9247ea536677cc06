package cmd

import (
	"fmt"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/spf13/cobra"
)

// fetchCmd resolves a repository reference to a local clone path.
var fetchCmd = &cobra.Command{
	Use:   "fetch <repository>",
	Short: "Fetch a repository into the cache and print its local path.",
	Long: `Resolve a repository reference to a local clone, fetching it if needed.

Accepts any of the common reference forms:
- Shorthand:  owner/repo
- Web URL:    https://github.com/owner/repo
- SSH URL:    git@github.com:owner/repo.git

If the repository is already cached its existing path is printed without any
network access, and the entry's recency is refreshed. On a miss the repository
is shallow-cloned into the cache, evicting the least recently used entries
first when the cache is at capacity.

The printed path is the only thing written to stdout, so the command composes
well with shell pipelines.

Examples:
  # Fetch by shorthand
  clonecache fetch octocat/Hello-World

  # Equivalent forms share one cache entry
  clonecache fetch https://github.com/octocat/Hello-World.git

  # Jump into a cached clone
  cd "$(clonecache fetch octocat/Hello-World)"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		localPath, err := manager.Acquire(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Cannot fetch repository", err)
		}
		fmt.Println(localPath)
	},
}
