// Package llm wraps an OpenAI-compatible chat API as the text-generation
// collaborator used by the assessment engine.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

// New creates a new LLM client. baseURL may point at any OpenAI-compatible
// endpoint (OpenAI, Groq, a local server).
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(config),
		model:       modelName,
		temperature: 0.7,
	}
}

// Generate sends the prompt plus ordered context to the model and returns
// the first textual response. History entries are texts the model produced
// earlier in the session (prior questions), replayed as assistant turns.
func (c *Client) Generate(ctx context.Context, prompt string, history []string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, h := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: h,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("LLM response", "len", len(out))
	if out == "" {
		return "", fmt.Errorf("LLM returned empty response")
	}
	return out, nil
}

// Ping verifies the endpoint is reachable and the model is served.
func (c *Client) Ping(ctx context.Context) error {
	models, err := c.api.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range models.Models {
		if m.ID == c.model {
			return nil
		}
	}
	slog.Warn("configured model not in endpoint model list", "model", c.model)
	return nil
}
