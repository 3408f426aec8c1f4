package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/lazygit-lite/internal/app"
)

func runViewer(repoPath string) error {
	m, err := app.New(cfg, repoPath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
