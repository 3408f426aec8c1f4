package gitlog

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Skipf("git not available or failed (%v): %s", err, out)
		}
	}

	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	run("add", "a.txt")
	run("commit", "-q", "-m", "first")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	run("add", "a.txt")
	run("commit", "-q", "-m", "second")

	return dir
}

func TestCommitsReturnsTopoOrderedStream(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := OpenRepository(dir)
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}

	commits, err := repo.Commits(LogOptions{All: true})
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject != "second" || commits[1].Subject != "first" {
		t.Errorf("expected [second, first], got [%s, %s]", commits[0].Subject, commits[1].Subject)
	}
	if len(commits[0].Parents) != 1 || commits[0].Parents[0] != commits[1].Hash {
		t.Errorf("expected second's parent to be first's hash")
	}
	if len(commits[1].Parents) != 0 {
		t.Errorf("expected first commit to have no parents, got %v", commits[1].Parents)
	}
}

func TestCommitsRespectsMaxCount(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := OpenRepository(dir)
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}

	commits, err := repo.Commits(LogOptions{MaxCount: 1})
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
	if commits[0].Subject != "second" {
		t.Errorf("expected the most recent commit first, got %q", commits[0].Subject)
	}
}

func TestHasWorkingTreeChanges(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := OpenRepository(dir)
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}
	if repo.HasWorkingTreeChanges() {
		t.Errorf("expected a clean working tree right after commit")
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	if !repo.HasWorkingTreeChanges() {
		t.Errorf("expected a dirty working tree after editing a tracked file")
	}
}
