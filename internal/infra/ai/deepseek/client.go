package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	domai "github.com/arqlabs/marketscope/internal/domain/ai"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"

	// Tuned for output consistency over creativity.
	temperature = 0.3
	topP        = 0.8
	maxTokens   = 8192
)

type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a DeepSeek client over the OpenAI-compatible API.
// baseURL and model are optional; empty values use the DeepSeek defaults.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = defaultModel
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Complete sends the prompt pair and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.Model,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
