package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, workDir string, args ...string) ([]byte, error) {
	fullArgs := args
	if workDir != "" {
		fullArgs = append([]string{"-C", workDir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed: %s", stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// CloneShallow implements the GitClient interface. It fetches limited history
// depth rather than full history, for speed and space.
func (c *LocalGitClient) CloneShallow(ctx context.Context, url, targetPath string, depth int) error {
	args := []string{
		"clone",
		"--depth", strconv.Itoa(depth),
		"--single-branch",
		url,
		targetPath,
	}
	if _, err := c.Run(ctx, "", args...); err != nil {
		return fmt.Errorf("shallow clone of %s failed: %w", url, err)
	}
	return nil
}
