package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// IsRepo reports whether path is inside a git repository.
func IsRepo(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// RemoteURL returns the configured origin remote URL, or "unknown" when the
// repository has no origin remote.
func RemoteURL(path string) string {
	url, err := run(path, "remote", "get-url", "origin")
	if err != nil || url == "" {
		return "unknown"
	}
	return url
}

func run(path string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", path}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}
