package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

const validPayload = `{"articles": [
	{"title": "Cumbre climática alcanza acuerdo", "summary": "Resumen original.", "category": "Mundo", "source": "Agencia EFE", "publishedTime": "Hace 2 horas", "imageKeyword": "climate summit", "url": "https://example.com/a"},
	{"title": "Nuevo chip cuántico", "summary": "Otro resumen.", "category": "Tecnología", "source": "TecDiario", "publishedTime": "Hace 1 hora", "imageKeyword": "quantum chip"}
]}`

func TestParseDrafts(t *testing.T) {
	drafts, err := parseDrafts(validPayload, model.CategoryWorld)
	if err != nil {
		t.Fatalf("parseDrafts: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Title != "Cumbre climática alcanza acuerdo" {
		t.Errorf("unexpected first title: %q", drafts[0].Title)
	}
	if drafts[0].URL != "https://example.com/a" {
		t.Errorf("expected url kept, got %q", drafts[0].URL)
	}
	if drafts[1].URL != "" {
		t.Errorf("expected missing url to stay empty, got %q", drafts[1].URL)
	}
}

func TestParseDraftsCodeFenced(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	drafts, err := parseDrafts(fenced, model.CategoryWorld)
	if err != nil {
		t.Fatalf("parseDrafts fenced: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("expected 2 drafts from fenced payload, got %d", len(drafts))
	}
}

func TestParseDraftsDefaultsCategory(t *testing.T) {
	payload := `{"articles": [{"title": "T", "summary": "S", "source": "F", "publishedTime": "Ahora", "imageKeyword": "k"}]}`
	drafts, err := parseDrafts(payload, model.CategoryScience)
	if err != nil {
		t.Fatalf("parseDrafts: %v", err)
	}
	if drafts[0].Category != model.CategoryScience {
		t.Errorf("expected category defaulted to Ciencia, got %q", drafts[0].Category)
	}
}

func TestParseDraftsDropsIncomplete(t *testing.T) {
	payload := `{"articles": [
		{"title": "Completa", "summary": "S", "category": "Mundo", "source": "F", "publishedTime": "Ahora", "imageKeyword": "k"},
		{"title": "", "summary": "sin titular", "category": "Mundo", "source": "F", "publishedTime": "Ahora", "imageKeyword": "k"},
		{"title": "Sin resumen", "category": "Mundo", "source": "F", "publishedTime": "Ahora", "imageKeyword": "k"}
	]}`
	drafts, err := parseDrafts(payload, model.CategoryWorld)
	if err != nil {
		t.Fatalf("parseDrafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 usable draft, got %d", len(drafts))
	}
	if drafts[0].Title != "Completa" {
		t.Errorf("wrong survivor: %q", drafts[0].Title)
	}
}

func TestParseDraftsMalformedJSON(t *testing.T) {
	if _, err := parseDrafts("no es json", model.CategoryWorld); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestParseDraftsNothingUsable(t *testing.T) {
	payload := `{"articles": [{"title": "", "summary": ""}]}`
	if _, err := parseDrafts(payload, model.CategoryWorld); err == nil {
		t.Error("expected error when no item satisfies the schema")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatHeadlines(t *testing.T) {
	out := formatHeadlines([]Headline{
		{Title: "Titular A", Source: "Agencia", URL: "https://a.com", PublishedAt: "2026-03-01"},
		{Title: "Titular B", Source: "Diario"},
	})
	if !strings.Contains(out, "Titular A") || !strings.Contains(out, "https://a.com") {
		t.Errorf("missing headline fields: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("expected one line per headline, got %d", lines)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	if _, err := New(nil, "key"); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := New(&config.AIConfig{Provider: "gemini"}, ""); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := New(&config.AIConfig{Provider: "cohere"}, "key"); err == nil {
		t.Error("expected error for unknown provider")
	}

	gen, err := New(&config.AIConfig{}, "key")
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}
	if _, ok := gen.(*geminiProvider); !ok {
		t.Errorf("expected gemini by default, got %T", gen)
	}
}

func geminiStub(t *testing.T, handler http.HandlerFunc) *geminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := newGemini(&config.AIConfig{}, "test-key")
	g.baseURL = srv.URL
	return g
}

// serveText writes a minimal generateContent response whose first
// candidate carries the given text.
func serveText(w http.ResponseWriter, text string) {
	part, _ := json.Marshal(text)
	w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + string(part) + `}]}}]}`))
}

func TestGeminiRewriteHeadlines(t *testing.T) {
	var gotPath string
	var gotReq geminiRequest
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		serveText(w, validPayload)
	})

	drafts, err := g.RewriteHeadlines(context.Background(), model.CategoryWorld, []Headline{
		{Title: "Raw headline", Source: "Agencia"},
	})
	if err != nil {
		t.Fatalf("RewriteHeadlines: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("expected 2 drafts, got %d", len(drafts))
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Error("expected structured-output generation config")
	}
	if len(gotReq.GenerationConfig.ResponseSchema) == 0 {
		t.Error("expected response schema attached")
	}
}

func TestGeminiDiscoverUsesSearchTool(t *testing.T) {
	var gotReq geminiRequest
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		serveText(w, validPayload)
	})

	if _, err := g.Discover(context.Background(), model.CategoryWorld); err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].GoogleSearch == nil {
		t.Error("expected google_search tool in discover request")
	}
	if gotReq.GenerationConfig != nil && len(gotReq.GenerationConfig.ResponseSchema) != 0 {
		t.Error("discover must not pin a response schema alongside the search tool")
	}
}

func TestGeminiDeepDive(t *testing.T) {
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		serveText(w, "## Contexto\n\nAnálisis.")
	})

	got, err := g.DeepDive(context.Background(), "Titular", "Resumen")
	if err != nil {
		t.Fatalf("DeepDive: %v", err)
	}
	if got != "## Contexto\n\nAnálisis." {
		t.Errorf("unexpected deep dive: %q", got)
	}
}

func TestGeminiIllustrate(t *testing.T) {
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash-image") {
			t.Errorf("expected image model in path, got %q", r.URL.Path)
		}
		// "iVBORw==" is the base64 PNG magic.
		w.Write([]byte(`{"candidates":[{"content":{"parts":[
			{"text":"caption"},
			{"inlineData":{"mimeType":"image/png","data":"iVBORw=="}}
		]}}]}`))
	})

	img, err := g.Illustrate(context.Background(), "Titular", "Resumen")
	if err != nil {
		t.Fatalf("Illustrate: %v", err)
	}
	if img.MimeType != "image/png" || len(img.Data) != 4 {
		t.Errorf("unexpected image: %+v", img)
	}
}

func TestGeminiIllustrateNoImageData(t *testing.T) {
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		serveText(w, "solo texto")
	})

	if _, err := g.Illustrate(context.Background(), "T", "S"); err == nil {
		t.Error("expected error when response has no inline image")
	}
}

func TestGeminiServerError(t *testing.T) {
	g := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	if _, err := g.DeepDive(context.Background(), "T", "S"); err == nil {
		t.Error("expected error on 503")
	}
}

func TestOpenAIDiscoverUnsupported(t *testing.T) {
	p := newOpenAI(&config.AIConfig{Provider: "openai"}, "key")
	if _, err := p.Discover(context.Background(), model.CategoryWorld); err != ErrNoSearchGrounding {
		t.Errorf("expected ErrNoSearchGrounding, got %v", err)
	}
}
