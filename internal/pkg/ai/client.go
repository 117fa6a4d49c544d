package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
)

const defaultAIBaseURL = "https://api.openai.com"

// ErrNotConfigured means no API key is set; the AI endpoints answer 503.
var ErrNotConfigured = errors.New("ai provider is not configured")

// Client is a minimal chat-completions client for an OpenAI-compatible API.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  strings.TrimSpace(env.GetEnv("AI_API_KEY", "")),
		BaseURL: strings.TrimRight(env.GetEnv("AI_API_BASE_URL", defaultAIBaseURL), "/"),
		Model:   env.GetEnv("AI_MODEL", "gpt-4o-mini"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.4,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ai completion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("invalid ai completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("ai completion response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}
