package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "ahora"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(a model.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-4))
	}

	marks := ""
	if a.DeepDive != "" {
		marks += " ◆"
	}
	if a.Image != nil {
		marks += " ▣"
	}

	meta := "  " + itemSourceStyle.Render(a.Source) +
		" " + itemTimeStyle.Render("· "+relativeTime(a.FetchedAt)+marks)

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(articles []model.Article, cursor int, height int, width int, window model.Window) string {
	if len(articles) == 0 {
		msg := "No hay noticias en la última hora.\nPulsa r para actualizar."
		if window == model.WindowArchived {
			msg = "No hay noticias archivadas todavía."
		}
		return emptyState(msg, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func emptyState(msg string, width, height int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", height/3))
	for i, l := range strings.Split(msg, "\n") {
		pad := (width - len([]rune(l))) / 2
		if pad < 0 {
			pad = 0
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", pad) + emptyStateStyle.Render(l))
	}
	return b.String()
}
