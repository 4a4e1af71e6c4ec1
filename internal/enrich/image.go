package enrich

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/store"
)

// Images memoizes one generated illustration per article.
type Images struct {
	store *store.Store
	gen   ai.Generator
}

func NewImages(s *store.Store, gen ai.Generator) *Images {
	return &Images{store: s, gen: gen}
}

// GetOrCreate returns the cached illustration, or issues one generation
// request and patches the store. A failed generation returns (nil,
// false) without caching anything, so the record can be retried; callers
// fall back to PlaceholderURL.
func (m *Images) GetOrCreate(ctx context.Context, id string) (*model.GeneratedImage, bool) {
	rec, ok := m.store.Get(id)
	if !ok {
		return nil, false
	}
	if rec.Image != nil {
		return rec.Image, true
	}
	if m.gen == nil {
		return nil, false
	}

	img, err := m.gen.Illustrate(ctx, rec.Title, rec.Summary)
	if err != nil || img == nil || len(img.Data) == 0 {
		return nil, false
	}
	m.store.Patch(id, store.Patch{Image: img})
	return img, true
}

// PlaceholderURL is a deterministic stock-image reference derived from a
// hash of title and keyword, so an article without a generated
// illustration still has something to show.
func PlaceholderURL(title, keyword string) string {
	h := sha256.Sum256([]byte(keyword + title))
	return fmt.Sprintf("https://picsum.photos/seed/%x/800/600?grayscale", h[:8])
}
