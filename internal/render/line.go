// Package render assembles a graph engine's per-commit Symbol vector
// and a commit's metadata into the text or styled line a caller
// displays — the Line Assembler the engine's own package deliberately
// stays ignorant of.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/graph"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

// PlainLine renders one commit's glyph vector and metadata as
// unstyled text, the shape `railgraph log` pipes to stdout.
func PlainLine(table graph.Table, symbols []graph.Symbol, commit gitlog.Commit) string {
	var b strings.Builder
	for _, sym := range symbols {
		b.WriteString(graph.Glyph(table, sym))
	}
	b.WriteByte(' ')
	b.WriteString(commit.ShortHash)

	if refStr := plainRefs(commit.Refs); refStr != "" {
		b.WriteByte(' ')
		b.WriteString(refStr)
	}

	b.WriteByte(' ')
	b.WriteString(commit.Subject)
	b.WriteString("  ")
	b.WriteString(FormatRelativeTime(commit.Date))
	return b.String()
}

func plainRefs(refs []gitlog.Ref) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		switch {
		case r.RefType == gitlog.RefTypeTag:
			parts = append(parts, "tag:"+r.Name)
		case r.IsHead:
			parts = append(parts, "HEAD -> "+r.Name)
		default:
			parts = append(parts, r.Name)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StyledLine renders one commit's glyph vector and metadata with
// lipgloss, coloring each lane glyph by the Symbol's registry color
// and truncating the subject to fit maxWidth — the teacher's
// RenderCommitLine contract, rebuilt on top of the engine's own
// Symbol vector instead of an ad-hoc lane computation.
func StyledLine(theme styles.Theme, table graph.Table, symbols []graph.Symbol, commit gitlog.Commit, maxWidth int, bg lipgloss.Color) string {
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	graphParts := make([]string, len(symbols))
	for i, sym := range symbols {
		glyph := graph.Glyph(table, sym)
		color := theme.Graph(sym.Color)
		if sym.Empty {
			graphParts[i] = lipgloss.NewStyle().Background(bg).Render(glyph)
		} else {
			graphParts[i] = lipgloss.NewStyle().Foreground(color).Background(bg).Render(glyph)
		}
	}
	graphStr := strings.Join(graphParts, "")

	hashStyle := lipgloss.NewStyle().Foreground(theme.CommitHash).Background(bg)
	dateStyle := lipgloss.NewStyle().Foreground(theme.Subtext).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(theme.Foreground).Background(bg)

	var refStr string
	if len(commit.Refs) > 0 {
		refStr = styledRefs(theme, commit.Refs, bg)
	}

	prefix := graphStr + spacer + hashStyle.Render(commit.ShortHash)
	if refStr != "" {
		prefix = prefix + spacer + refStr
	}
	prefixWidth := lipgloss.Width(prefix)

	timeStr := dateStyle.Render(FormatRelativeTime(commit.Date))
	timeWidth := lipgloss.Width(timeStr)

	subjectAvail := maxWidth - prefixWidth - timeWidth - 3
	if subjectAvail < 4 {
		subjectAvail = 4
	}

	subject := commit.Subject
	subjectRunes := []rune(subject)
	if len(subjectRunes) > subjectAvail {
		subject = string(subjectRunes[:subjectAvail-1]) + "…"
	}

	line := prefix + spacer + subjectStyle.Render(subject)

	lineWidth := lipgloss.Width(line)
	gap := maxWidth - lineWidth - timeWidth - 1
	if gap > 1 {
		line = line + lipgloss.NewStyle().Background(bg).Width(gap).Render("") + timeStr
	}

	return line
}

func styledRefs(theme styles.Theme, refs []gitlog.Ref, bg lipgloss.Color) string {
	decoBg := theme.BackgroundPanel
	parts := make([]string, 0, len(refs))

	for _, ref := range refs {
		var style lipgloss.Style
		var icon string

		switch {
		case ref.RefType == gitlog.RefTypeTag:
			style = lipgloss.NewStyle().Foreground(theme.Tag).Background(decoBg).Bold(true).Padding(0, 1)
			icon = "t:"
		case ref.IsHead:
			style = lipgloss.NewStyle().Foreground(theme.Head).Background(decoBg).Bold(true).Padding(0, 1)
			icon = "* "
		case ref.IsRemote:
			style = lipgloss.NewStyle().Foreground(theme.BranchFeature).Background(decoBg).Padding(0, 1)
		default:
			style = lipgloss.NewStyle().Foreground(theme.BranchMain).Background(decoBg).Bold(true).Padding(0, 1)
		}

		parts = append(parts, style.Render(icon+ref.Name))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, lipgloss.NewStyle().Background(bg).Render(" "))
}

// FormatRelativeTime renders t as a short relative duration ("3 days
// ago"), the format the teacher's commit list uses for its timestamp
// column.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}
