package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// newsAPICategories maps sections to the NewsAPI taxonomy.
var newsAPICategories = map[model.Category]string{
	model.CategoryWorld:         "general",
	model.CategoryTechnology:    "technology",
	model.CategoryBusiness:      "business",
	model.CategoryScience:       "science",
	model.CategorySports:        "sports",
	model.CategoryEntertainment: "entertainment",
}

// newsAPI queries NewsAPI top headlines and hands them to the generative
// rewriter. A non-ok status is unavailability, not a hard failure.
type newsAPI struct {
	apiKey   string
	language string
	pageSize int
	gen      ai.Generator
	baseURL  string
	client   *http.Client
}

func newNewsAPI(apiKey string, cfg *config.Config, gen ai.Generator) *newsAPI {
	lang := cfg.Language
	if lang == "" {
		lang = "es"
	}
	return &newsAPI{
		apiKey:   apiKey,
		language: lang,
		pageSize: cfg.NewsAPIPageSize(),
		gen:      gen,
		baseURL:  newsAPIBaseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (n *newsAPI) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (n *newsAPI) Fetch(ctx context.Context, category model.Category) ([]model.Draft, error) {
	headlines, err := n.headlines(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(headlines) == 0 {
		return nil, fmt.Errorf("no headlines for %s", category)
	}
	return n.gen.RewriteHeadlines(ctx, category, headlines)
}

func (n *newsAPI) headlines(ctx context.Context, category model.Category) ([]ai.Headline, error) {
	q := url.Values{}
	q.Set("category", newsAPICategories[category])
	q.Set("language", n.language)
	q.Set("pageSize", strconv.Itoa(n.pageSize))

	req, err := http.NewRequestWithContext(ctx, "GET", n.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("newsapi %d: %s", resp.StatusCode, string(b))
	}

	var nr newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("decoding newsapi response: %w", err)
	}
	if nr.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q", nr.Status)
	}

	headlines := make([]ai.Headline, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		if a.Title == "" {
			continue
		}
		headlines = append(headlines, ai.Headline{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
		})
	}
	return headlines, nil
}
