package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/enrich"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

func renderPreview(article *model.Article, width, height, scroll int) string {
	if article == nil {
		return emptyState("Selecciona una noticia", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)
	source := previewSourceStyle.Render(
		fmt.Sprintf("%s · %s", article.Source, article.PublishedTime),
	)

	body := previewBodyStyle.Width(contentWidth).Render(wrapText(article.Summary, contentWidth))

	imageLine := "Ilustración: " + enrich.PlaceholderURL(article.Title, article.ImageKeyword)
	if article.Image != nil {
		imageLine = fmt.Sprintf("Ilustración generada (%s, %d bytes) — pulsa s para guardar",
			article.Image.MimeType, len(article.Image.Data))
	}
	image := previewLinkStyle.Width(contentWidth).Render(imageLine)

	analysis := "enter: leer análisis profundo"
	if article.DeepDive != "" {
		analysis = "enter: análisis profundo (en caché)"
	}
	footer := previewLinkStyle.Width(contentWidth).Render(analysis)

	sections := []string{title, source, "", body, "", image, footer}
	if article.URL != "" {
		sections = append(sections, previewLinkStyle.Width(contentWidth).Render("Fuente: "+article.URL))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
