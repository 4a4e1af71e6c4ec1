package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// renderTabs draws the category row; the active section is highlighted.
func renderTabs(active model.Category, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for _, c := range model.Categories() {
		style := tabInactiveStyle
		if c == active {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(string(c)))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

// renderWindowToggle draws the recency filter row.
func renderWindowToggle(active model.Window, width int) string {
	label := tabSeparatorStyle.Render("Filtrar por: ")
	recent := tabInactiveStyle.Render(model.WindowRecent.String())
	archived := tabInactiveStyle.Render(model.WindowArchived.String())
	if active == model.WindowRecent {
		recent = tabActiveStyle.Render(model.WindowRecent.String())
	} else {
		archived = tabActiveStyle.Render(model.WindowArchived.String())
	}
	return lipgloss.NewStyle().Width(width).PaddingLeft(1).
		Render(label + recent + " " + archived)
}
