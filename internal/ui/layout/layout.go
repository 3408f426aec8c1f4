package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout sizes the single full-width graph panel and stacks it with an
// optional extra panel (a visible modal) above the action bar. Unlike the
// teacher's two-pane split, there is only one main content column; width
// is never divided.
type Layout struct {
	width      int
	height     int
	splitRatio float64

	background lipgloss.Color
	border     lipgloss.Color
	foreground lipgloss.Color
}

func New(width, height int, splitRatio float64, background, border, foreground lipgloss.Color) *Layout {
	return &Layout{
		width:      width,
		height:     height,
		splitRatio: splitRatio,
		background: background,
		border:     border,
		foreground: foreground,
	}
}

// Calculate returns the content area available to the main panel when no
// extra panel is visible: the full width, and the full height less two
// rows reserved for the action bar.
func (l *Layout) Calculate() (width, height int) {
	width = l.width
	height = l.height - 2
	if height < 0 {
		height = 0
	}
	return
}

// CalculateWithExtra returns the content area available to the main panel
// once extraHeight rows have been reserved above the action bar for a
// visible modal (commit, branch, or help).
func (l *Layout) CalculateWithExtra(extraHeight int) (width, height int) {
	width, height = l.Calculate()
	height -= extraHeight
	if height < 0 {
		height = 0
	}
	return
}

// RenderWithExtra stacks the main panel, the optional extra panel, and the
// action bar into a single full-screen view. extra is omitted entirely
// when empty so no modal means no gap.
func (l *Layout) RenderWithExtra(main, extra, actionBar string) string {
	rows := []string{main}

	if extra != "" {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(l.foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(l.border).
			Render(extra))
	}

	rows = append(rows, actionBar)

	return lipgloss.NewStyle().
		Background(l.background).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}
