package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	engine "github.com/yourusername/lazygit-lite/internal/graph"
	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/render"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

// LaneSpacing is the number of extra characters MaxLanes reserves per
// lane beyond the two-cell glyph. Lane glyphs themselves are drawn
// side by side with no padding between them.
const LaneSpacing = 1

// GraphRenderer renders each commit's row by feeding the commit stream
// through the graph engine once (InitGraph) and caching the resulting
// Symbol vectors, then mapping those vectors through a glyph Table for
// each RenderCommitLine/RenderLaneGutter call. It owns no layout logic
// of its own — the engine's consume cycle is the only source of lane
// geometry.
type GraphRenderer struct {
	theme styles.Theme
	table engine.Table

	commits []*gitlog.Commit
	rows    [][]engine.Symbol
	index   map[string]int // commit hash -> row index
	maxRow  int
}

// NewGraphRenderer builds a renderer for the given theme and glyph
// style ("box" or "rounded"; anything else falls back to "box").
func NewGraphRenderer(theme styles.Theme, style string) *GraphRenderer {
	table := engine.BoxTable
	if style == "rounded" {
		table = engine.RoundedTable
	}
	return &GraphRenderer{theme: theme, table: table}
}

// InitGraph feeds commits through a fresh engine in the order given —
// the order the commit source already guarantees is topological (each
// commit before its parents) — and caches one Symbol vector per
// commit for later rendering.
func (g *GraphRenderer) InitGraph(commits []*gitlog.Commit) {
	e := engine.New()

	g.commits = commits
	g.rows = make([][]engine.Symbol, len(commits))
	g.index = make(map[string]int, len(commits))
	g.maxRow = 0

	for i, c := range commits {
		g.index[c.Hash] = i
		symbols := e.Consume(c.Hash, c.Parents, c.Boundary)
		g.rows[i] = symbols
		if len(symbols) > g.maxRow {
			g.maxRow = len(symbols)
		}
	}

	for i, row := range g.rows {
		if len(row) == g.maxRow {
			continue
		}
		padded := make([]engine.Symbol, g.maxRow)
		copy(padded, row)
		for j := len(row); j < g.maxRow; j++ {
			padded[j] = engine.Symbol{Empty: true}
		}
		g.rows[i] = padded
	}
}

// RenderCommitLine renders a single commit line. maxWidth is the available
// character width so the line can be truncated to prevent wrapping.
// bg is the background color to use for all text in this line (allows the
// caller to pass Selection for highlighted rows, BackgroundPanel for expanded
// headers, etc.).
func (g *GraphRenderer) RenderCommitLine(commit *gitlog.Commit, index int, maxWidth int, bg lipgloss.Color) string {
	if index >= len(g.rows) {
		return g.renderSimple(commit, index, bg)
	}

	if commit.Hash == gitlog.UncommittedHash {
		return g.renderUncommitted(commit, g.rows[index], bg)
	}

	return render.StyledLine(g.theme, g.table, g.rows[index], *commit, maxWidth, bg)
}

// renderUncommitted draws the same lane glyphs as any other row but
// gives the synthetic "uncommitted changes" entry a distinct marker
// and italic subject, matching the teacher's treatment of that row.
func (g *GraphRenderer) renderUncommitted(commit *gitlog.Commit, symbols []engine.Symbol, bg lipgloss.Color) string {
	uncommittedColor := g.theme.CommitHash
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		if sym.Commit {
			parts[i] = lipgloss.NewStyle().Foreground(uncommittedColor).Background(bg).Render("◌ ")
			continue
		}
		glyph := engine.Glyph(g.table, sym)
		if sym.Empty {
			parts[i] = lipgloss.NewStyle().Background(bg).Render(glyph)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(g.theme.Graph(sym.Color)).Background(bg).Render(glyph)
		}
	}

	hashStyle := lipgloss.NewStyle().Foreground(uncommittedColor).Background(bg).Bold(true)
	subjectStyle := lipgloss.NewStyle().Foreground(uncommittedColor).Background(bg).Italic(true)

	return strings.Join(parts, "") + spacer + hashStyle.Render(commit.ShortHash) + spacer + subjectStyle.Render(commit.Subject)
}

func (g *GraphRenderer) renderSimple(commit *gitlog.Commit, index int, bg lipgloss.Color) string {
	color := g.theme.Graph(index)

	commitStyle := lipgloss.NewStyle().Foreground(color).Background(bg)
	hashStyle := lipgloss.NewStyle().Foreground(g.theme.CommitHash).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(g.theme.Foreground).Background(bg)
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	graphSymbol := commitStyle.Render("●")

	return graphSymbol + spacer + hashStyle.Render(commit.ShortHash) + spacer + subjectStyle.Render(commit.Subject)
}

// MaxLanes returns the width reserved for the graph gutter in
// characters: one glyph cell (2 runes) plus LaneSpacing characters per
// lane of the widest row. RenderLaneGutter draws 2 characters per lane,
// so the reserved width exceeds the drawn gutter by LaneSpacing per lane.
func (g *GraphRenderer) MaxLanes() int {
	n := g.maxRow
	if n == 0 {
		n = 1
	}
	return n * (2 + LaneSpacing)
}

// RenderLaneGutter renders the lane-continuation glyphs for display
// alongside expanded content rows, sitting visually between a commit
// and the next. A column keeps its vertical bar when the engine marks
// it ContinuedDown, and the commit's own column keeps one unless the
// commit is a boundary (a root commit's column included); every other
// column is blank.
func (g *GraphRenderer) RenderLaneGutter(index int, bg lipgloss.Color) string {
	if index >= len(g.rows) {
		return ""
	}

	symbols := g.rows[index]
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		if sym.ContinuedDown || (sym.Commit && !sym.Boundary) {
			style := lipgloss.NewStyle().Foreground(g.theme.Graph(sym.Color)).Background(bg)
			parts[i] = style.Render(" │")
		} else {
			parts[i] = lipgloss.NewStyle().Background(bg).Render("  ")
		}
	}
	return strings.Join(parts, "")
}

// ---------------------------------------------------------------------------
// Side-by-side diff rendering
// ---------------------------------------------------------------------------

// diffLine represents one line from a unified diff with its type.
type diffLine struct {
	kind    byte // ' ' context, '+' add, '-' remove, '@' hunk header
	content string
	oldNum  int // 0 means blank
	newNum  int // 0 means blank
}

// parseDiffLines parses raw unified diff text into structured diffLines,
// skipping file-level headers (diff --git, index, ---, +++).
func parseDiffLines(raw string) []diffLine {
	lines := strings.Split(raw, "\n")
	var result []diffLine
	var oldLine, newLine int

	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git") ||
			strings.HasPrefix(line, "index ") ||
			strings.HasPrefix(line, "---") ||
			strings.HasPrefix(line, "+++") ||
			strings.HasPrefix(line, "new file") ||
			strings.HasPrefix(line, "deleted file") {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			oldLine, newLine = parseHunkHeader(line)
			result = append(result, diffLine{kind: '@', content: line})
			continue
		}

		if strings.HasPrefix(line, "-") {
			result = append(result, diffLine{kind: '-', content: line[1:], oldNum: oldLine})
			oldLine++
		} else if strings.HasPrefix(line, "+") {
			result = append(result, diffLine{kind: '+', content: line[1:], newNum: newLine})
			newLine++
		} else if strings.HasPrefix(line, "\\") {
			result = append(result, diffLine{kind: '\\', content: line})
		} else {
			result = append(result, diffLine{kind: ' ', content: strings.TrimPrefix(line, " "), oldNum: oldLine, newNum: newLine})
			oldLine++
			newLine++
		}
	}
	return result
}

func parseHunkHeader(line string) (oldStart, newStart int) {
	var oldCount, newCount int
	fmt.Sscanf(line, "@@ -%d,%d +%d,%d @@", &oldStart, &oldCount, &newStart, &newCount)
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d +%d @@", &oldStart, &newStart)
	}
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d,%d +%d @@", &oldStart, &oldCount, &newStart)
	}
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d +%d,%d @@", &oldStart, &newStart, &newCount)
	}
	return
}

// sideBySidePair represents one rendered row of the side-by-side view.
type sideBySidePair struct {
	leftNum   int    // 0 = blank
	leftText  string // raw text (no prefix)
	leftKind  byte   // ' ', '-', or '@'
	rightNum  int
	rightText string
	rightKind byte // ' ', '+', or '@'
}

// buildSideBySidePairs converts parsed diff lines into paired left/right rows.
// Adjacent remove/add blocks are zipped together; context appears on both sides.
func buildSideBySidePairs(dlines []diffLine) []sideBySidePair {
	var pairs []sideBySidePair
	i := 0
	for i < len(dlines) {
		dl := dlines[i]

		switch dl.kind {
		case '@':
			pairs = append(pairs, sideBySidePair{
				leftKind:  '@',
				leftText:  dl.content,
				rightKind: '@',
				rightText: dl.content,
			})
			i++

		case ' ':
			pairs = append(pairs, sideBySidePair{
				leftNum:   dl.oldNum,
				leftText:  dl.content,
				leftKind:  ' ',
				rightNum:  dl.newNum,
				rightText: dl.content,
				rightKind: ' ',
			})
			i++

		case '-':
			// Collect consecutive removes.
			var removes []diffLine
			for i < len(dlines) && dlines[i].kind == '-' {
				removes = append(removes, dlines[i])
				i++
			}
			// Collect immediately following adds.
			var adds []diffLine
			for i < len(dlines) && dlines[i].kind == '+' {
				adds = append(adds, dlines[i])
				i++
			}
			// Zip them together.
			maxLen := len(removes)
			if len(adds) > maxLen {
				maxLen = len(adds)
			}
			for j := 0; j < maxLen; j++ {
				p := sideBySidePair{}
				if j < len(removes) {
					p.leftNum = removes[j].oldNum
					p.leftText = removes[j].content
					p.leftKind = '-'
				}
				if j < len(adds) {
					p.rightNum = adds[j].newNum
					p.rightText = adds[j].content
					p.rightKind = '+'
				}
				pairs = append(pairs, p)
			}

		case '+':
			// Orphan add (no preceding remove).
			pairs = append(pairs, sideBySidePair{
				rightNum:  dl.newNum,
				rightText: dl.content,
				rightKind: '+',
			})
			i++

		case '\\':
			// "\ No newline at end of file" — show on both sides.
			pairs = append(pairs, sideBySidePair{
				leftText:  dl.content,
				leftKind:  '\\',
				rightText: dl.content,
				rightKind: '\\',
			})
			i++

		default:
			i++
		}
	}
	return pairs
}

// FormatDiffLines takes a raw diff string and returns styled side-by-side lines.
// maxWidth is the total available character width for the diff area.
func (g *GraphRenderer) FormatDiffLines(diff string, maxWidth int) []string {
	if diff == "" {
		return nil
	}

	parsed := parseDiffLines(diff)
	pairs := buildSideBySidePairs(parsed)

	// Layout: [left half] [separator 1ch "│"] [right half]
	// Each half: [lineNum 5ch] [content]
	// We use lipgloss.Width on each half block to guarantee fixed column alignment.
	const sepWidth = 1 // "│"
	const numWidth = 5 // e.g. " 142 "
	halfWidth := (maxWidth - sepWidth) / 2
	if halfWidth < 10 {
		halfWidth = 10
	}
	contentWidth := halfWidth - numWidth
	if contentWidth < 4 {
		contentWidth = 4
	}

	removeBg := g.theme.DiffRemoveBg
	addBg := g.theme.DiffAddBg

	// Styles for the line number column — fixed width via lipgloss.
	numStyleOld := lipgloss.NewStyle().
		Foreground(g.theme.DiffRemove).
		Background(removeBg).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleNew := lipgloss.NewStyle().
		Foreground(g.theme.DiffAdd).
		Background(addBg).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleCtx := lipgloss.NewStyle().
		Foreground(g.theme.DiffContext).
		Background(g.theme.Background).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleBlank := lipgloss.NewStyle().
		Background(g.theme.Background).
		Width(numWidth)

	removeContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffRemove).
		Background(removeBg).
		Width(contentWidth)
	addContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffAdd).
		Background(addBg).
		Width(contentWidth)
	contextContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.Foreground).
		Background(g.theme.Background).
		Width(contentWidth)
	blankContentStyle := lipgloss.NewStyle().
		Background(g.theme.Background).
		Width(contentWidth)

	hunkStyle := lipgloss.NewStyle().
		Foreground(g.theme.BranchFeature).
		Background(g.theme.BackgroundPanel).
		Width(maxWidth)
	sepStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffContext).
		Background(g.theme.Background)
	headerStyle := lipgloss.NewStyle().
		Foreground(g.theme.Subtext).
		Background(g.theme.Background).
		Italic(true).
		Width(maxWidth)

	sep := sepStyle.Render("│")

	var result []string

	for _, p := range pairs {
		if p.leftKind == '@' {
			result = append(result, hunkStyle.Render(truncate(p.leftText, maxWidth)))
			continue
		}

		if p.leftKind == '\\' || p.rightKind == '\\' {
			result = append(result, headerStyle.Render(truncate(p.leftText, maxWidth)))
			continue
		}

		// Build left half.
		var leftNum, leftContent string
		switch p.leftKind {
		case '-':
			leftNum = numStyleOld.Render(fmt.Sprintf("%d", p.leftNum))
			leftContent = removeContentStyle.Render(truncate(p.leftText, contentWidth))
		case ' ':
			leftNum = numStyleCtx.Render(fmt.Sprintf("%d", p.leftNum))
			leftContent = contextContentStyle.Render(truncate(p.leftText, contentWidth))
		default:
			leftNum = numStyleBlank.Render("")
			leftContent = blankContentStyle.Render("")
		}

		// Build right half.
		var rightNum, rightContent string
		switch p.rightKind {
		case '+':
			rightNum = numStyleNew.Render(fmt.Sprintf("%d", p.rightNum))
			rightContent = addContentStyle.Render(truncate(p.rightText, contentWidth))
		case ' ':
			rightNum = numStyleCtx.Render(fmt.Sprintf("%d", p.rightNum))
			rightContent = contextContentStyle.Render(truncate(p.rightText, contentWidth))
		default:
			rightNum = numStyleBlank.Render("")
			rightContent = blankContentStyle.Render("")
		}

		line := leftNum + leftContent + sep + rightNum + rightContent
		result = append(result, line)
	}

	// Limit to a reasonable number of lines for inline display.
	const maxDiffLines = 300
	if len(result) > maxDiffLines {
		result = result[:maxDiffLines]
		result = append(result, headerStyle.Render(
			fmt.Sprintf("  ... %d more lines (truncated)", len(pairs)-maxDiffLines)))
	}

	return result
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth])
	}
	return s
}

