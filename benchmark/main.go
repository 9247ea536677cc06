// Package main provides a performance benchmarking tool for the clonecache CLI.
// It measures fetch times for a set of repositories, treating the first run as
// cold (network clone) and averaging the rest as warm (cache hits), generating
// CSV output for performance analysis and documentation.
//
// Prerequisites:
// - clonecache binary installed and available in PATH
// - Network access to the remote host
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to use as HOME for an isolated cache
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold fetch and average of warm fetches).
type BenchmarkResult struct {
	Repository string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	WarmRuns  int
	TestRepos []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:  workDir,
		Timeout:  5 * time.Minute,
		WarmRuns: 4,
		TestRepos: []string{
			"octocat/Hello-World",
			"mitchellh/go-homedir",
			"stretchr/testify",
			"spf13/cobra",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty cache so the first fetch is genuinely cold
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("clonecache", "cache", "clear")
	clearCmd.Env = append(os.Environ(), "HOME="+config.WorkDir)
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the clonecache binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if clonecache is available
	if _, err := exec.LookPath("clonecache"); err != nil {
		return fmt.Errorf("clonecache binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// runBenchmarks executes fetch benchmarks across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, warm: %d runs\n",
		len(config.TestRepos), config.Timeout, config.WarmRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		cold, warmTimes := runFetches(config, repo)

		coldStr := "TIMEOUT"
		if cold > 0 {
			coldStr = fmt.Sprintf("%.3fs", cold)
		}

		warmStr := "TIMEOUT"
		if len(warmTimes) > 0 {
			var sum float64
			for _, t := range warmTimes {
				sum += t
			}
			warmStr = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
		}

		fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

		results = append(results, BenchmarkResult{
			Repository: repo,
			ColdTime:   coldStr,
			WarmTime:   warmStr,
		})
	}

	return results
}

// runFetches runs one cold fetch followed by warm fetches and returns the timings
func runFetches(config BenchmarkConfig, repo string) (coldTime float64, warmTimes []float64) {
	for run := 0; run <= config.WarmRuns; run++ {
		elapsed, ok := timedFetch(config, repo)
		if !ok {
			continue
		}
		if run == 0 {
			coldTime = elapsed
		} else {
			warmTimes = append(warmTimes, elapsed)
		}
	}
	return coldTime, warmTimes
}

// timedFetch runs one fetch under the configured timeout and reports its duration
func timedFetch(config BenchmarkConfig, repo string) (float64, bool) {
	start := time.Now()

	cmd := exec.Command("clonecache", "fetch", repo)
	cmd.Env = append(os.Environ(), "HOME="+config.WorkDir)
	cmd.Dir = config.WorkDir

	done := make(chan error, 1)
	go func() {
		_, err := cmd.CombinedOutput()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Printf("  Warning: fetch failed for %s: %v\n", repo, err)
			return 0, false
		}
		return time.Since(start).Seconds(), true
	case <-time.After(config.Timeout):
		_ = cmd.Process.Kill()
		fmt.Printf("  Warning: fetch timed out for %s\n", repo)
		return 0, false
	}
}

// saveResults writes benchmark results to a CSV file
func saveResults(results []BenchmarkResult) error {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repository", "cold_time", "warm_time"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Repository, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints a compact table of benchmark results
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-40s cold=%-10s warm=%s\n", r.Repository, r.ColdTime, r.WarmTime)
	}
	fmt.Println("\nResults written to benchmark_results.csv")
}
