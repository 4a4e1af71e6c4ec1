package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// openaiProvider implements Generator with the official openai-go SDK.
// It has no search grounding, so Discover reports ErrNoSearchGrounding
// and the source chain falls through.
type openaiProvider struct {
	model      string
	imageModel string
	opts       []option.RequestOption
}

func newOpenAI(cfg *config.AIConfig, apiKey string) *openaiProvider {
	m := cfg.Model
	if m == "" {
		m = "gpt-4o-mini"
	}
	im := cfg.ImageModel
	if im == "" {
		im = "dall-e-3"
	}
	return &openaiProvider{
		model:      m,
		imageModel: im,
		opts:       []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

func (o *openaiProvider) RewriteHeadlines(ctx context.Context, category model.Category, headlines []Headline) ([]model.Draft, error) {
	prompt := fmt.Sprintf(rewritePrompt, category, category, formatHeadlines(headlines))
	text, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseDrafts(text, category)
}

func (o *openaiProvider) Discover(ctx context.Context, category model.Category) ([]model.Draft, error) {
	return nil, ErrNoSearchGrounding
}

func (o *openaiProvider) DeepDive(ctx context.Context, title, summary string) (string, error) {
	prompt := fmt.Sprintf(deepDivePrompt, title, summary)
	text, err := o.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (o *openaiProvider) Illustrate(ctx context.Context, title, summary string) (*model.GeneratedImage, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         fmt.Sprintf(illustratePrompt, title, summary),
		Model:          openai.ImageModel(o.imageModel),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("openai image error: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("openai: empty image response")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	return &model.GeneratedImage{MimeType: "image/png", Data: data}, nil
}

func (o *openaiProvider) complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
