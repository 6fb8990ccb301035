// Package git shells out to the git binary for the release metadata
// that cff release stamps into a citation file.
package git

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrNotGitRepo indicates the directory is not a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ErrCommitNotFound indicates the specified commit does not exist.
var ErrCommitNotFound = errors.New("commit not found")

// FindRepoRoot finds the root of the git repository containing the
// given path. Returns ErrNotGitRepo if not in a git repository.
func FindRepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", ErrNotGitRepo
	}
	return strings.TrimSpace(string(output)), nil
}

// ResolveCommit resolves a commit reference to its full SHA.
// Supports SHA, HEAD, HEAD~N, branch names, tags, etc.
// Returns ErrCommitNotFound if the reference does not exist.
func ResolveCommit(repoRoot, commitRef string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--verify", commitRef+"^{commit}")
	output, err := cmd.Output()
	if err != nil {
		return "", ErrCommitNotFound
	}
	return strings.TrimSpace(string(output)), nil
}

// Describe returns the nearest reachable tag, used to suggest a
// version number. A repository without tags returns empty with no
// error.
func Describe(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "describe", "--tags", "--abbrev=0")
	output, err := cmd.Output()
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}
