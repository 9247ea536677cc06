// Package cmd defines the command-line interface for clonecache.
package cmd

import (
	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheEvictCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("max-clones", contract.DefaultMaxClones, "Maximum number of repositories to keep cached")
	rootCmd.PersistentFlags().String("clone-dir", contract.DefaultCloneDir, "Base directory for cached clones")
	rootCmd.PersistentFlags().Int("clone-depth", contract.DefaultCloneDepth, "History depth for shallow clones")
	rootCmd.PersistentFlags().Float64("cleanup-days", contract.DefaultCleanupDays, "Staleness window in days for prune")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore in cached content")
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project root holding a scoped metadata store")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
