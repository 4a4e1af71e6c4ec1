package tui

import (
	"strings"
)

// renderDeepDive draws the full-screen analysis viewer. The text is raw
// markdown straight from the provider; it is wrapped but not converted.
func renderDeepDive(title, text string, width, height, scroll int, loading bool) string {
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	header := deepDiveTitleStyle.Width(contentWidth).Render(title)

	var body string
	if loading {
		body = emptyStateStyle.Render("Generando análisis profundo...")
	} else {
		var paras []string
		for _, p := range strings.Split(text, "\n") {
			paras = append(paras, wrapText(p, contentWidth))
		}
		body = previewBodyStyle.Render(strings.Join(paras, "\n"))
	}

	lines := strings.Split(header+"\n"+body, "\n")
	if scroll > 0 {
		if scroll >= len(lines) {
			scroll = len(lines) - 1
		}
		lines = lines[scroll:]
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  " + l + "\n")
	}
	return b.String()
}
