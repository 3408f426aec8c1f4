package styles

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	// Tiered background colors (darkest → lightest) for visual depth.
	Background        lipgloss.Color // Root/base — fills the entire terminal
	BackgroundPanel   lipgloss.Color // Panels, expanded metadata areas
	BackgroundElement lipgloss.Color // Interactive elements, hover states

	Foreground    lipgloss.Color
	Subtext       lipgloss.Color
	Border        lipgloss.Color
	Selection     lipgloss.Color
	BranchMain    lipgloss.Color
	BranchFeature lipgloss.Color
	BranchHotfix  lipgloss.Color
	Tag           lipgloss.Color
	Head          lipgloss.Color
	DiffAdd       lipgloss.Color
	DiffRemove    lipgloss.Color
	DiffContext   lipgloss.Color
	DiffAddBg     lipgloss.Color
	DiffRemoveBg  lipgloss.Color
	CommitHash    lipgloss.Color

	// GraphColors holds one entry per lane color slot in the graph
	// engine's color registry (see internal/graph.NumColors); Graph(i)
	// wraps the index so a caller never has to special-case a too-large
	// registry index.
	GraphColors []lipgloss.Color
}

// Graph returns the lane color for color registry index i, wrapping
// around the palette if the registry ever reports more colors than the
// theme defines.
func (t Theme) Graph(i int) lipgloss.Color {
	if len(t.GraphColors) == 0 {
		return t.Foreground
	}
	return t.GraphColors[i%len(t.GraphColors)]
}

func CatppuccinMocha() Theme {
	return Theme{
		Background:        lipgloss.Color("#1e1e2e"), // Catppuccin Base
		BackgroundPanel:   lipgloss.Color("#181825"), // Catppuccin Mantle (panels)
		BackgroundElement: lipgloss.Color("#11111b"), // Catppuccin Crust (deepest)

		Foreground:    lipgloss.Color("#cdd6f4"),
		Subtext:       lipgloss.Color("#a6adc8"),
		Border:        lipgloss.Color("#313244"),
		Selection:     lipgloss.Color("#45475a"),
		BranchMain:    lipgloss.Color("#a6e3a1"),
		BranchFeature: lipgloss.Color("#89b4fa"),
		BranchHotfix:  lipgloss.Color("#f38ba8"),
		Tag:           lipgloss.Color("#f9e2af"),
		Head:          lipgloss.Color("#cba6f7"),
		DiffAdd:       lipgloss.Color("#a6e3a1"),
		DiffRemove:    lipgloss.Color("#f38ba8"),
		DiffContext:   lipgloss.Color("#585b70"),
		DiffAddBg:     lipgloss.Color("#1a2e1a"),
		DiffRemoveBg:  lipgloss.Color("#2e1a1a"),
		CommitHash:    lipgloss.Color("#fab387"),
		GraphColors: []lipgloss.Color{
			lipgloss.Color("#89b4fa"), // blue
			lipgloss.Color("#cba6f7"), // mauve
			lipgloss.Color("#94e2d5"), // teal
			lipgloss.Color("#f9e2af"), // yellow
			lipgloss.Color("#a6e3a1"), // green
			lipgloss.Color("#f38ba8"), // red
			lipgloss.Color("#fab387"), // peach
			lipgloss.Color("#f5c2e7"), // pink
			lipgloss.Color("#74c7ec"), // sapphire
			lipgloss.Color("#eba0ac"), // maroon
			lipgloss.Color("#b4befe"), // lavender
			lipgloss.Color("#94e2d5"), // teal (2nd pass)
			lipgloss.Color("#fab387"), // peach (2nd pass)
			lipgloss.Color("#a6e3a1"), // green (2nd pass)
		},
	}
}

func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha()
	default:
		return CatppuccinMocha()
	}
}
