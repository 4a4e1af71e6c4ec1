package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiProvider struct {
	apiKey     string
	model      string
	imageModel string
	baseURL    string
	client     *http.Client
}

func newGemini(cfg *config.AIConfig, apiKey string) *geminiProvider {
	m := cfg.Model
	if m == "" {
		m = "gemini-2.5-flash"
	}
	im := cfg.ImageModel
	if im == "" {
		im = "gemini-2.5-flash-image"
	}
	return &geminiProvider{
		apiKey:     apiKey,
		model:      m,
		imageModel: im,
		baseURL:    geminiBaseURL,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	Tools            []geminiTool     `json:"tools,omitempty"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *geminiBlob `json:"inlineData,omitempty"`
}

// geminiBlob carries inline binary data; []byte marshals as base64,
// matching the API wire format.
type geminiBlob struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenConfig struct {
	ResponseMimeType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     json.RawMessage `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// articleListSchema is the fixed structured-output schema for article
// list responses.
var articleListSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"articles": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"title": {"type": "STRING"},
					"summary": {"type": "STRING"},
					"category": {"type": "STRING"},
					"source": {"type": "STRING"},
					"publishedTime": {"type": "STRING"},
					"imageKeyword": {"type": "STRING"},
					"url": {"type": "STRING", "description": "Link to the source if found"}
				},
				"required": ["title", "summary", "category", "source", "publishedTime", "imageKeyword"]
			}
		}
	}
}`)

func (g *geminiProvider) RewriteHeadlines(ctx context.Context, category model.Category, headlines []Headline) ([]model.Draft, error) {
	prompt := fmt.Sprintf(rewritePrompt, category, category, formatHeadlines(headlines))
	resp, err := g.call(ctx, g.model, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   articleListSchema,
		},
	})
	if err != nil {
		return nil, err
	}
	return parseDrafts(firstText(resp), category)
}

func (g *geminiProvider) Discover(ctx context.Context, category model.Category) ([]model.Draft, error) {
	prompt := fmt.Sprintf(discoverPrompt, category)
	resp, err := g.call(ctx, g.model, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Tools:    []geminiTool{{GoogleSearch: &struct{}{}}},
		GenerationConfig: &geminiGenConfig{
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, err
	}
	return parseDrafts(firstText(resp), category)
}

func (g *geminiProvider) DeepDive(ctx context.Context, title, summary string) (string, error) {
	prompt := fmt.Sprintf(deepDivePrompt, title, summary)
	resp, err := g.call(ctx, g.model, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	text := firstText(resp)
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return strings.TrimSpace(text), nil
}

func (g *geminiProvider) Illustrate(ctx context.Context, title, summary string) (*model.GeneratedImage, error) {
	prompt := fmt.Sprintf(illustratePrompt, title, summary)
	resp, err := g.call(ctx, g.imageModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	})
	if err != nil {
		return nil, err
	}
	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return &model.GeneratedImage{
					MimeType: p.InlineData.MimeType,
					Data:     p.InlineData.Data,
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("gemini response contained no image data")
}

func (g *geminiProvider) call(ctx context.Context, modelID string, payload geminiRequest) (*geminiResponse, error) {
	body, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, modelID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("gemini API %d: %s", resp.StatusCode, string(b))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Candidates) == 0 {
		return nil, fmt.Errorf("empty gemini response")
	}
	return &gr, nil
}

// firstText concatenates the text parts of the first candidate.
func firstText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
