package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// maxFeedHeadlines bounds how many feed items go to the rewriter.
const maxFeedHeadlines = 8

var googleNewsTopics = map[model.Category]string{
	model.CategoryWorld:         "WORLD",
	model.CategoryTechnology:    "TECHNOLOGY",
	model.CategoryBusiness:      "BUSINESS",
	model.CategoryScience:       "SCIENCE",
	model.CategorySports:        "SPORTS",
	model.CategoryEntertainment: "ENTERTAINMENT",
}

// googleNews pulls the keyless Google News section feed for a category
// and hands the items to the generative rewriter.
type googleNews struct {
	parser   *gofeed.Parser
	language string
	gen      ai.Generator
}

func newGoogleNews(language string, gen ai.Generator) *googleNews {
	if language == "" {
		language = "es"
	}
	return &googleNews{parser: gofeed.NewParser(), language: language, gen: gen}
}

func (g *googleNews) Name() string { return "googlenews" }

func (g *googleNews) feedURL(category model.Category) string {
	region := strings.ToUpper(g.language)
	return fmt.Sprintf(
		"https://news.google.com/rss/headlines/section/topic/%s?hl=%s&gl=%s&ceid=%s:%s",
		googleNewsTopics[category], g.language, region, region, g.language,
	)
}

func (g *googleNews) Fetch(ctx context.Context, category model.Category) ([]model.Draft, error) {
	feed, err := g.parser.ParseURLWithContext(g.feedURL(category), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching google news feed: %w", err)
	}

	var headlines []ai.Headline
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format("2006-01-02 15:04")
		}
		source := ""
		// Google News encodes the outlet as "Headline - Outlet".
		if i := strings.LastIndex(item.Title, " - "); i > 0 {
			source = item.Title[i+3:]
		}
		headlines = append(headlines, ai.Headline{
			Title:       item.Title,
			Source:      source,
			URL:         item.Link,
			Description: truncate(stripHTML(item.Description), 300),
			PublishedAt: published,
		})
		if len(headlines) == maxFeedHeadlines {
			break
		}
	}
	if len(headlines) == 0 {
		return nil, fmt.Errorf("empty google news feed for %s", category)
	}
	return g.gen.RewriteHeadlines(ctx, category, headlines)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
