// Package ai talks to the generative providers. Everything the rest of
// the client needs from a model goes through the Generator interface:
// rewriting structured headlines into original summaries, discovering
// news with search grounding, long-form analysis, and illustrations.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// ErrNoSearchGrounding marks a provider that cannot discover news on its
// own. The source chain treats it like any other unavailable provider.
var ErrNoSearchGrounding = errors.New("provider does not support search grounding")

// Headline is a raw story tuple from a structured news provider, before
// the rewriting step.
type Headline struct {
	Title       string
	Source      string
	URL         string
	Description string
	PublishedAt string
}

// Generator produces all derived content for the client.
type Generator interface {
	// RewriteHeadlines turns raw headline tuples into original,
	// non-plagiarizing Spanish drafts, preserving source and url.
	RewriteHeadlines(ctx context.Context, category model.Category, headlines []Headline) ([]model.Draft, error)
	// Discover finds and rewrites recent stories for the category in one
	// search-grounded call.
	Discover(ctx context.Context, category model.Category) ([]model.Draft, error)
	// DeepDive writes a long-form markdown analysis seeded with an
	// article's title and summary.
	DeepDive(ctx context.Context, title, summary string) (string, error)
	// Illustrate generates an editorial illustration for an article.
	Illustrate(ctx context.Context, title, summary string) (*model.GeneratedImage, error)
}

// New creates a Generator from the given AI config.
func New(cfg *config.AIConfig, apiKey string) (Generator, error) {
	if cfg == nil || apiKey == "" {
		return nil, fmt.Errorf("AI not configured")
	}

	switch cfg.Provider {
	case "", "gemini":
		return newGemini(cfg, apiKey), nil
	case "openai":
		return newOpenAI(cfg, apiKey), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: gemini, openai)", cfg.Provider)
	}
}

const discoverPrompt = `Actúa como un periodista experto de "Mundo AI News".

TAREA:
1. Busca las noticias más importantes y recientes sobre: "%s".
2. Selecciona las 6 historias más impactantes de las últimas 24 horas.
3. Para cada historia, escribe un resumen ORIGINAL y atractivo en español.
   - El resumen debe ser único para evitar plagio.
   - Usa un tono profesional pero accesible.
   - Máximo 40 palabras por resumen.
4. Proporciona una "keyword" (palabra clave) en inglés para buscar una imagen relacionada.

Devuelve la respuesta estrictamente en formato JSON con la forma
{"articles": [{"title", "summary", "category", "source", "publishedTime", "imageKeyword", "url"}]}.`

const rewritePrompt = `Actúa como un periodista experto de "Mundo AI News".

Recibes titulares en bruto sobre "%s". Para cada uno escribe un resumen
ORIGINAL en español (máximo 40 palabras, tono profesional pero accesible,
nunca copies la descripción fuente), conserva "source" y "url" tal cual,
y añade una "imageKeyword" en inglés. Usa "%s" como category.

TITULARES:
%s

Devuelve la respuesta estrictamente en formato JSON con la forma
{"articles": [{"title", "summary", "category", "source", "publishedTime", "imageKeyword", "url"}]}.`

const deepDivePrompt = `Actúa como un analista senior de "Mundo AI News".

Escribe un análisis profundo en español sobre esta noticia, en formato
markdown: contexto, actores clave, implicaciones y qué observar a futuro.
Entre 300 y 500 palabras. Sin exageraciones ni signos de exclamación.

Titular: %s
Resumen: %s

Responde ÚNICAMENTE con el análisis en markdown.`

const illustratePrompt = `Editorial illustration for a news story, minimal black and white aesthetic, no embedded text or lettering.

Headline: %s
Summary: %s`

type draftsPayload struct {
	Articles []model.Draft `json:"articles"`
}

// parseDrafts decodes a provider article-list payload. Items with a
// missing category inherit the requested one; items violating the rest of
// the draft schema are dropped. A payload that yields nothing usable is a
// malformed response.
func parseDrafts(raw string, category model.Category) ([]model.Draft, error) {
	var payload draftsPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed article payload: %w", err)
	}

	var drafts []model.Draft
	for _, d := range payload.Articles {
		if d.Category == "" {
			d.Category = category
		}
		if !d.Complete() {
			continue
		}
		drafts = append(drafts, d)
	}
	if len(drafts) == 0 {
		return nil, errors.New("article payload contained no usable items")
	}
	return drafts, nil
}

// stripCodeFence unwraps a payload the model wrapped in a ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func formatHeadlines(headlines []Headline) string {
	var sb strings.Builder
	for _, h := range headlines {
		sb.WriteString("- title: ")
		sb.WriteString(h.Title)
		sb.WriteString(" | source: ")
		sb.WriteString(h.Source)
		if h.PublishedAt != "" {
			sb.WriteString(" | publishedTime: ")
			sb.WriteString(h.PublishedAt)
		}
		if h.URL != "" {
			sb.WriteString(" | url: ")
			sb.WriteString(h.URL)
		}
		if h.Description != "" {
			sb.WriteString(" | description: ")
			sb.WriteString(h.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
