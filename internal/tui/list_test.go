package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "ahora"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{2 * 24 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		if got := relativeTime(now.Add(-tt.age)); got != tt.want {
			t.Errorf("relativeTime(-%v) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("corto", 20); got != "corto" {
		t.Errorf("expected passthrough, got %q", got)
	}
	got := truncateStr("un titular bastante más largo que el ancho", 20)
	if len([]rune(got)) != 20 {
		t.Errorf("expected 20 runes, got %d (%q)", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if truncateStr("abc", 0) != "" {
		t.Error("expected empty string for zero width")
	}
}

func TestRenderListItemMarks(t *testing.T) {
	a := model.Article{Title: "Titular", Source: "Agencia", FetchedAt: time.Now()}
	plain := renderListItem(a, false, 60)
	if strings.Contains(plain, "◆") || strings.Contains(plain, "▣") {
		t.Error("no marks expected without cached content")
	}

	a.DeepDive = "Análisis"
	a.Image = &model.GeneratedImage{MimeType: "image/png", Data: []byte{1}}
	enriched := renderListItem(a, false, 60)
	if !strings.Contains(enriched, "◆") {
		t.Error("expected deep-dive mark")
	}
	if !strings.Contains(enriched, "▣") {
		t.Error("expected image mark")
	}
}

func TestRenderListEmptyStates(t *testing.T) {
	recent := renderList(nil, 0, 20, 60, model.WindowRecent)
	if !strings.Contains(recent, "No hay noticias en la última hora") {
		t.Errorf("unexpected recent empty state: %q", recent)
	}
	archived := renderList(nil, 0, 20, 60, model.WindowArchived)
	if !strings.Contains(archived, "No hay noticias archivadas") {
		t.Errorf("unexpected archive empty state: %q", archived)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("una frase con varias palabras para envolver", 12)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 12 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
	if wrapText("", 12) != "" {
		t.Error("expected empty output for empty input")
	}
	if wrapText("intacto", 0) != "intacto" {
		t.Error("expected passthrough for zero width")
	}
}

func TestRenderPreviewPlaceholder(t *testing.T) {
	a := &model.Article{
		Title: "Titular", Summary: "Resumen", Source: "Agencia",
		PublishedTime: "Hace 1 hora", ImageKeyword: "climate",
	}
	out := renderPreview(a, 120, 40, 0)
	if !strings.Contains(out, "picsum.photos") {
		t.Error("expected placeholder image url without a generated image")
	}

	a.Image = &model.GeneratedImage{MimeType: "image/png", Data: []byte{1, 2, 3}}
	out = renderPreview(a, 120, 40, 0)
	if strings.Contains(out, "picsum.photos") {
		t.Error("generated image must replace the placeholder line")
	}
	if !strings.Contains(out, "image/png") {
		t.Error("expected generated image info")
	}
}
