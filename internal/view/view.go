// Package view projects history onto the visible article subset.
package view

import (
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// Project selects the records matching the category whose recency at
// time now matches the window. Pure and recomputed on every call; input
// ordering (newest ingestion first) is preserved.
func Project(history []model.Article, category model.Category, window model.Window, now time.Time) []model.Article {
	var out []model.Article
	for _, a := range history {
		if a.Category != category {
			continue
		}
		if !a.InWindow(window, now) {
			continue
		}
		out = append(out, a)
	}
	return out
}
