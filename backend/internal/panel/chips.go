package panel

import "maxim-atlas/backend/internal/graph"

// Chip is one theme in the filter bar or the legend
type Chip struct {
	Theme  graph.Theme `json:"theme"`
	Color  string      `json:"color"`
	Active bool        `json:"active"`
}

// ThemeChips lists every theme in canonical order, marking those in active
func ThemeChips(active graph.ThemeSet) []Chip {
	themes := graph.AllThemes()
	chips := make([]Chip, 0, len(themes))
	for _, t := range themes {
		chips = append(chips, Chip{Theme: t, Color: t.Color(), Active: active.Has(t)})
	}
	return chips
}

// Legend lists every theme with its colour
func Legend() []Chip {
	return ThemeChips(graph.FullThemeSet())
}
