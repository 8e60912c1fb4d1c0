package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Ddraigan/diff-tool/internal/config"
)

// Theme-coherent defaults: 109=cyan accent, 241=dim, 252=bright
const (
	defaultAccent     = "109"
	defaultAdditionFg = "16"
	defaultAdditionBg = "#83f28c"
	defaultRemovalFg  = "16"
	defaultRemovalBg  = "#f28b82"
	defaultBlankBg    = "236"
)

type styles struct {
	title      lipgloss.Style
	subtle     lipgloss.Style
	border     lipgloss.Style
	paneTitle  lipgloss.Style
	number     lipgloss.Style
	selected   lipgloss.Style
	gutter     lipgloss.Style
	addMarker  lipgloss.Style
	addText    lipgloss.Style
	remMarker  lipgloss.Style
	remText    lipgloss.Style
	blank      lipgloss.Style
	stats      lipgloss.Style
	added      lipgloss.Style
	removed    lipgloss.Style
	helpKey    lipgloss.Style
	helpText   lipgloss.Style
	helpBorder lipgloss.Style
	notice     lipgloss.Style
}

func orDefault(v, def string) lipgloss.Color {
	if v == "" {
		return lipgloss.Color(def)
	}
	return lipgloss.Color(v)
}

func newStyles(c config.Colors) styles {
	accent := orDefault(c.Accent, defaultAccent)
	addBg := orDefault(c.AdditionBg, defaultAdditionBg)
	remBg := orDefault(c.RemovalBg, defaultRemovalBg)

	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		subtle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		border:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("241")),
		paneTitle:  lipgloss.NewStyle().Foreground(accent),
		number:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		gutter:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		addMarker:  lipgloss.NewStyle().Bold(true).Foreground(addBg),
		addText:    lipgloss.NewStyle().Foreground(orDefault(c.AdditionFg, defaultAdditionFg)).Background(addBg),
		remMarker:  lipgloss.NewStyle().Bold(true).Foreground(remBg),
		remText:    lipgloss.NewStyle().Foreground(orDefault(c.RemovalFg, defaultRemovalFg)).Background(remBg),
		blank:      lipgloss.NewStyle().Background(orDefault(c.BlankBg, defaultBlankBg)),
		stats:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		added:      lipgloss.NewStyle().Foreground(addBg),
		removed:    lipgloss.NewStyle().Foreground(remBg),
		helpKey:    lipgloss.NewStyle().Foreground(accent),
		helpText:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		helpBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		notice:     lipgloss.NewStyle().Bold(true).Foreground(remBg),
	}
}
