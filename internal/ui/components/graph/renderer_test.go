package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

func testCommits() []*gitlog.Commit {
	return []*gitlog.Commit{
		{Hash: "c2", Parents: []string{"c1"}, ShortHash: "c2", Subject: "second", Date: time.Unix(200, 0)},
		{Hash: "c1", Parents: nil, ShortHash: "c1", Subject: "first", Date: time.Unix(100, 0)},
	}
}

func TestRenderCommitLineIncludesSubject(t *testing.T) {
	r := NewGraphRenderer(styles.CatppuccinMocha(), "box")
	commits := testCommits()
	r.InitGraph(commits)

	line := r.RenderCommitLine(commits[0], 0, 80, styles.CatppuccinMocha().Background)
	if !strings.Contains(line, "second") {
		t.Fatalf("RenderCommitLine() = %q, want it to contain the subject", line)
	}
}

func TestMaxLanesAtLeastOneLane(t *testing.T) {
	r := NewGraphRenderer(styles.CatppuccinMocha(), "box")
	r.InitGraph(testCommits())

	if r.MaxLanes() <= 0 {
		t.Fatalf("MaxLanes() = %d, want > 0", r.MaxLanes())
	}
}

func TestRenderLaneGutterOutOfRangeIsEmpty(t *testing.T) {
	r := NewGraphRenderer(styles.CatppuccinMocha(), "box")
	r.InitGraph(testCommits())

	if got := r.RenderLaneGutter(99, styles.CatppuccinMocha().Background); got != "" {
		t.Fatalf("RenderLaneGutter(99) = %q, want empty", got)
	}
}

func TestUncommittedRowUsesDistinctMarker(t *testing.T) {
	r := NewGraphRenderer(styles.CatppuccinMocha(), "box")
	commits := append([]*gitlog.Commit{
		{Hash: gitlog.UncommittedHash, ShortHash: gitlog.UncommittedShortHash, Subject: "uncommitted changes", Parents: []string{"c2"}},
	}, testCommits()...)
	r.InitGraph(commits)

	line := r.RenderCommitLine(commits[0], 0, 80, styles.CatppuccinMocha().Background)
	if !strings.Contains(line, "◌") {
		t.Fatalf("RenderCommitLine() for uncommitted row = %q, want it to contain the uncommitted marker", line)
	}
}
