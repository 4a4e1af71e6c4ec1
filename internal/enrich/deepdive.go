// Package enrich lazily materializes expensive derived content per
// article: long-form deep-dive analysis and generated illustrations.
// Both are write-once record fields; a failed generation is surfaced as
// a fallback value and never written back, so retries stay possible.
package enrich

import (
	"context"
	"strings"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/store"
)

// DeepDiveFailureMessage is what readers see when generation fails. It is
// never cached on the record.
const DeepDiveFailureMessage = "No se pudo generar el análisis en este momento. Por favor inténtalo de nuevo más tarde."

// DeepDives memoizes long-form analysis per article. Concurrent calls for
// the same id are not coalesced; the view layer avoids issuing
// overlapping requests for one record.
type DeepDives struct {
	store *store.Store
	gen   ai.Generator
}

func NewDeepDives(s *store.Store, gen ai.Generator) *DeepDives {
	return &DeepDives{store: s, gen: gen}
}

// GetOrCreate returns the cached analysis without touching the provider,
// or issues exactly one generation request, patches the store, and
// returns the text.
func (d *DeepDives) GetOrCreate(ctx context.Context, id string) string {
	rec, ok := d.store.Get(id)
	if !ok {
		return DeepDiveFailureMessage
	}
	if rec.DeepDive != "" {
		return rec.DeepDive
	}
	if d.gen == nil {
		return DeepDiveFailureMessage
	}

	text, err := d.gen.DeepDive(ctx, rec.Title, rec.Summary)
	if err != nil || strings.TrimSpace(text) == "" {
		return DeepDiveFailureMessage
	}
	d.store.Patch(id, store.Patch{DeepDive: &text})
	return text
}
