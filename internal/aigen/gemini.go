package aigen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider tries each configured model in order, moving on when a
// model is rate limited or unavailable.
type GeminiProvider struct {
	client *genai.Client
	models []string
}

func NewGeminiProvider(ctx context.Context, apiKey string, models []string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one Gemini model is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, models: models}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Generate(ctx context.Context, p Prompt) (string, error) {
	contents := genai.Text(p.Text)
	if p.HasImage() {
		contents = []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText(p.Text),
				genai.NewPartFromBytes(p.ImageData, p.ImageMIME),
			}, genai.RoleUser),
		}
	}

	var lastErr error
	for _, model := range g.models {
		result, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			if retryable(err) {
				lastErr = err
				continue
			}
			return "", err
		}
		if text := firstText(result); text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("empty response from %s", model)
	}
	return "", fmt.Errorf("all Gemini models failed: %w", lastErr)
}

func firstText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return cleanText(content.Parts[0].Text)
}

func retryable(err error) bool {
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "exhausted", "404", "not found", "503", "unavailable"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
