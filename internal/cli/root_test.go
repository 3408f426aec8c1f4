package cli

import "testing"

func TestRepoPathArgUsesFirstArgument(t *testing.T) {
	got := repoPathArg([]string{"/some/repo", "ignored"})
	if got != "/some/repo" {
		t.Fatalf("repoPathArg() = %q, want /some/repo", got)
	}
}

func TestRepoPathArgFallsBackToWorkingDirectory(t *testing.T) {
	got := repoPathArg(nil)
	if got == "" {
		t.Fatal("repoPathArg(nil) returned empty string")
	}
}
