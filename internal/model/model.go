// Package model defines the core article types shared across the fetch,
// store, enrichment, and view layers.
package model

import "time"

// Category is one of the fixed news sections the client can browse.
type Category string

const (
	CategoryWorld         Category = "Mundo"
	CategoryTechnology    Category = "Tecnología"
	CategoryBusiness      Category = "Negocios"
	CategoryScience       Category = "Ciencia"
	CategorySports        Category = "Deportes"
	CategoryEntertainment Category = "Cultura"
)

// Categories returns all sections in display order.
func Categories() []Category {
	return []Category{
		CategoryWorld,
		CategoryTechnology,
		CategoryBusiness,
		CategoryScience,
		CategorySports,
		CategoryEntertainment,
	}
}

// Valid reports whether c is one of the known sections.
func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// Window partitions history by recency of ingestion.
type Window int

const (
	WindowRecent Window = iota
	WindowArchived
)

// RecentWindow is how long an article counts as "recent" after ingestion.
const RecentWindow = time.Hour

func (w Window) String() string {
	if w == WindowRecent {
		return "Última Hora"
	}
	return "Anteriores"
}

// Draft is a rewritten article as returned by a news source, before it has
// been given an identity. Drafts are discarded once merged into the store.
type Draft struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Category      Category `json:"category"`
	Source        string   `json:"source"`
	PublishedTime string   `json:"publishedTime"`
	ImageKeyword  string   `json:"imageKeyword"`
	URL           string   `json:"url,omitempty"`
}

// Complete reports whether the draft satisfies the output contract: every
// field except URL must be non-empty.
func (d Draft) Complete() bool {
	return d.Title != "" && d.Summary != "" && d.Category != "" &&
		d.Source != "" && d.PublishedTime != "" && d.ImageKeyword != ""
}

// GeneratedImage is an AI-generated illustration payload.
type GeneratedImage struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Article is the durable unit of history: an identified draft plus
// lazily-computed derived content. ID and FetchedAt are assigned exactly
// once at merge time; DeepDive and Image are write-once.
type Article struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Category      Category        `json:"category"`
	Source        string          `json:"source"`
	PublishedTime string          `json:"publishedTime"`
	ImageKeyword  string          `json:"imageKeyword"`
	URL           string          `json:"url,omitempty"`
	FetchedAt     time.Time       `json:"fetchedAt"`
	DeepDive      string          `json:"deepDive,omitempty"`
	Image         *GeneratedImage `json:"generatedImage,omitempty"`
}

// InWindow reports whether the article falls in the given recency window
// at time now.
func (a Article) InWindow(w Window, now time.Time) bool {
	recent := now.Sub(a.FetchedAt) < RecentWindow
	if w == WindowRecent {
		return recent
	}
	return !recent
}
