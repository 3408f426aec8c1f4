package render

import (
	"strings"
	"testing"
	"time"

	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/graph"
)

func TestPlainLineSingleRoot(t *testing.T) {
	e := graph.New()
	symbols := e.Consume("abc1234", nil, false)

	commit := gitlog.Commit{
		Hash:      "abc1234567",
		ShortHash: "abc1234",
		Subject:   "initial commit",
		Date:      time.Now().Add(-2 * time.Hour),
	}

	line := PlainLine(graph.BoxTable, symbols, commit)
	if !strings.Contains(line, "abc1234") {
		t.Errorf("expected line to contain the short hash, got %q", line)
	}
	if !strings.Contains(line, "initial commit") {
		t.Errorf("expected line to contain the subject, got %q", line)
	}
	if !strings.Contains(line, "hours ago") {
		t.Errorf("expected a relative timestamp, got %q", line)
	}
}

func TestPlainLineIncludesRefs(t *testing.T) {
	e := graph.New()
	symbols := e.Consume("abc1234", nil, false)

	commit := gitlog.Commit{
		ShortHash: "abc1234",
		Subject:   "initial commit",
		Date:      time.Now(),
		Refs: []gitlog.Ref{
			{Name: "main", IsHead: true},
			{Name: "v1.0", RefType: gitlog.RefTypeTag},
		},
	}

	line := PlainLine(graph.BoxTable, symbols, commit)
	if !strings.Contains(line, "HEAD -> main") {
		t.Errorf("expected HEAD decoration, got %q", line)
	}
	if !strings.Contains(line, "tag:v1.0") {
		t.Errorf("expected tag decoration, got %q", line)
	}
}

func TestFormatRelativeTimeBuckets(t *testing.T) {
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5 mins ago"},
		{2 * time.Hour, "2 hours ago"},
		{25 * time.Hour, "yesterday"},
	}
	for _, c := range cases {
		got := FormatRelativeTime(time.Now().Add(-c.ago))
		if got != c.want {
			t.Errorf("FormatRelativeTime(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
}
