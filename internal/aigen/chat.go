package aigen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatProvider talks to an OpenAI-compatible chat completions endpoint.
type ChatProvider struct {
	name   string
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewChatProvider(name, apiURL, apiKey, model string, timeout time.Duration) *ChatProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatProvider{
		name:   name,
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *ChatProvider) Name() string { return c.name }

func (c *ChatProvider) Generate(ctx context.Context, p Prompt) (string, error) {
	var content any = p.Text
	if p.HasImage() {
		content = []chatContentPart{
			{Type: "text", Text: p.Text},
			{Type: "image_url", ImageURL: &chatImageURL{
				URL: "data:" + p.ImageMIME + ";base64," + base64.StdEncoding.EncodeToString(p.ImageData),
			}},
		}
	}
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: content}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("AI API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from AI")
	}
	text := cleanText(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from AI")
	}
	return text, nil
}
