package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"
)

// initRepo creates a throwaway repository with one commit.
func initRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@example.org",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@example.org",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-q", "-m", "initial commit")

	return dir
}

func TestFindRepoRoot(t *testing.T) {
	dir := initRepo(t)

	sub := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindRepoRoot(sub)
	if err != nil {
		t.Fatalf("FindRepoRoot() error = %v", err)
	}

	// git resolves symlinks in the path it reports
	wantRoot, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	gotRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if gotRoot != wantRoot {
		t.Errorf("FindRepoRoot() = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRepoRootOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	_, err := FindRepoRoot(t.TempDir())
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("FindRepoRoot() error = %v, want ErrNotGitRepo", err)
	}
}

func TestResolveCommit(t *testing.T) {
	dir := initRepo(t)

	sha, err := ResolveCommit(dir, "HEAD")
	if err != nil {
		t.Fatalf("ResolveCommit() error = %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{40}$`).MatchString(sha) {
		t.Errorf("ResolveCommit() = %q, want a full SHA", sha)
	}

	_, err = ResolveCommit(dir, "no-such-branch")
	if !errors.Is(err, ErrCommitNotFound) {
		t.Errorf("ResolveCommit(bad ref) error = %v, want ErrCommitNotFound", err)
	}
}

func TestDescribe(t *testing.T) {
	dir := initRepo(t)

	// No tags yet
	tag, err := Describe(dir)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if tag != "" {
		t.Errorf("Describe() = %q, want empty before tagging", tag)
	}

	cmd := exec.Command("git", "tag", "v1.4.1")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git tag: %v\n%s", err, out)
	}

	tag, err = Describe(dir)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if tag != "v1.4.1" {
		t.Errorf("Describe() = %q, want v1.4.1", tag)
	}
}
