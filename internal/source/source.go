// Package source fetches rewritten article drafts for a category. The
// providers form a fallback chain tried in order; the adapter itself
// never fails, it degrades to a sentinel draft so the merge pipeline
// downstream always receives well-formed input.
package source

import (
	"context"
	"log"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// Strategy is one way of producing drafts for a category. An error or an
// empty result hands over to the next strategy in the chain.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, category model.Category) ([]model.Draft, error)
}

type Adapter struct {
	strategies []Strategy
}

// NewAdapter builds the fallback chain from configured credentials:
// NewsAPI headlines first, then the keyless Google News feed, then
// search-grounded generation. Every path runs through the generative
// rewriter, so without an AI key the chain is empty and Fetch degrades
// to the sentinel.
func NewAdapter(cfg *config.Config, gen ai.Generator) *Adapter {
	var strategies []Strategy
	if gen != nil {
		if key := cfg.NewsAPIKey(); key != "" {
			strategies = append(strategies, newNewsAPI(key, cfg, gen))
		}
		if cfg.GoogleNews.Enabled {
			strategies = append(strategies, newGoogleNews(cfg.Language, gen))
		}
		strategies = append(strategies, &grounded{gen: gen})
	}
	return &Adapter{strategies: strategies}
}

// NewAdapterWith builds an adapter over an explicit chain. Used by tests
// and anywhere the default wiring is not wanted.
func NewAdapterWith(strategies ...Strategy) *Adapter {
	return &Adapter{strategies: strategies}
}

// Fetch tries each strategy in order and returns the first non-empty,
// schema-valid draft list. Total failure returns a single sentinel draft;
// callers never see an error.
func (a *Adapter) Fetch(ctx context.Context, category model.Category) []model.Draft {
	for _, s := range a.strategies {
		drafts, err := s.Fetch(ctx, category)
		if err != nil {
			log.Printf("source: %s unavailable for %s: %v", s.Name(), category, err)
			continue
		}
		if valid := validDrafts(drafts); len(valid) > 0 {
			return valid
		}
		log.Printf("source: %s returned nothing usable for %s", s.Name(), category)
	}
	return []model.Draft{Unavailable(category)}
}

// Unavailable is the sentinel draft emitted when every provider failed.
// It satisfies the full draft schema so merge logic needs no special case.
func Unavailable(category model.Category) model.Draft {
	return model.Draft{
		Title:         "Servicio de Noticias No Disponible",
		Summary:       "No pudimos conectar con la red neuronal de noticias en este momento. Por favor verifica tu API Key o intenta más tarde.",
		Category:      category,
		Source:        "Sistema",
		PublishedTime: "Ahora",
		ImageKeyword:  "error",
	}
}

func validDrafts(drafts []model.Draft) []model.Draft {
	var out []model.Draft
	for _, d := range drafts {
		if d.Complete() {
			out = append(out, d)
		}
	}
	return out
}

// grounded asks the generative provider to discover and rewrite stories
// in one search-grounded call.
type grounded struct {
	gen ai.Generator
}

func (g *grounded) Name() string { return "grounded" }

func (g *grounded) Fetch(ctx context.Context, category model.Category) ([]model.Draft, error) {
	return g.gen.Discover(ctx, category)
}
