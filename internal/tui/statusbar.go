package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, window string, width int, refreshing bool) string {
	left := fmt.Sprintf(" %d noticias · %s", articleCount, window)
	if refreshing {
		left += " (actualizando...)"
	}

	right := " 1-6 sección  w archivo  enter análisis  g imagen  r actualizar  q salir "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
