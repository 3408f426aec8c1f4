package modals

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

// BranchModal is a huh.Form-backed branch picker, embedded as a
// bubbletea sub-model: Update forwards key messages to the form, and
// the caller checks IsDone/SelectedBranch once the form completes.
type BranchModal struct {
	styles   *styles.Styles
	visible  bool
	width    int
	height   int
	branches []*gitlog.Branch
	selected string
	form     *huh.Form
}

func NewBranchModal(s *styles.Styles) BranchModal {
	return BranchModal{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Height returns the number of terminal rows this component occupies when visible.
func (m BranchModal) Height() int {
	if !m.visible {
		return 0
	}
	rows := len(m.branches)
	if rows > 10 {
		rows = 10
	}
	if rows < 1 {
		rows = 1
	}
	return rows + 4 // border(2) + title(1) + help(1)
}

// View renders the inline branch picker.
func (m BranchModal) View() string {
	if !m.visible || m.form == nil {
		return ""
	}
	return m.form.View()
}

// Update forwards a message to the underlying form. The caller should
// check IsDone after calling this to find out whether the user picked
// a branch or cancelled.
func (m *BranchModal) Update(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

// IsDone reports whether the form has reached a terminal state
// (completed or aborted).
func (m BranchModal) IsDone() bool {
	return m.form != nil && m.form.State() != huh.StateNormal
}

// Completed reports whether the form was submitted (as opposed to
// cancelled with esc).
func (m BranchModal) Completed() bool {
	return m.form != nil && m.form.State() == huh.StateCompleted
}

func huhTheme(s *styles.Styles) *huh.Theme {
	t := huh.ThemeBase()
	theme := s.Theme
	t.Focused.Title = t.Focused.Title.Foreground(theme.Foreground).Bold(true)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(theme.BranchMain).Bold(true)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(theme.Subtext)
	return t
}

func (m *BranchModal) Show(branches []*gitlog.Branch) {
	m.visible = true
	m.branches = branches

	options := make([]huh.Option[string], 0, len(branches))
	current := ""
	for _, b := range branches {
		label := b.Name
		if b.IsCurrent {
			label = "* " + label
			current = b.Name
		}
		options = append(options, huh.NewOption(label, b.Name))
	}

	m.selected = current
	field := huh.NewSelect[string]().
		Title("Branches").
		Options(options...).
		Value(&m.selected)

	m.form = huh.NewForm(huh.NewGroup(field)).
		WithTheme(huhTheme(m.styles)).
		WithShowHelp(true)
	m.form.Init()
}

func (m *BranchModal) Hide() {
	m.visible = false
	m.branches = nil
	m.form = nil
	m.selected = ""
}

func (m *BranchModal) IsVisible() bool {
	return m.visible
}

// SelectedBranch returns the branch chosen when the form completed, or nil.
func (m *BranchModal) SelectedBranch() *gitlog.Branch {
	for _, b := range m.branches {
		if b.Name == m.selected {
			return b
		}
	}
	return nil
}

func (m *BranchModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(width - 4).WithHeight(m.Height())
	}
}
