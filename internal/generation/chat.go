package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/internal/common"
)

// Message is one chat message in an OpenAI-compatible request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a professional chef and nutritionist. Always answer with a single JSON object that follows the format given by the user."

// ChatCompletionsGenerator talks to an OpenAI-compatible /chat/completions endpoint such as DeepSeek.
type ChatCompletionsGenerator struct {
	client *resty.Client
	model  string
}

func NewChatCompletionsGenerator(baseURL, apiKey, model string, timeout time.Duration) *ChatCompletionsGenerator {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey)).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if model == "" {
		model = "deepseek-chat"
	}
	return &ChatCompletionsGenerator{client: client, model: model}
}

func (g *ChatCompletionsGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: g.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		common.LogError("chat completion request failed", zap.String("model", g.model), zap.Error(err))
		return "", common.Unavailable(fmt.Errorf("failed to send request: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		return "", common.Unavailable(fmt.Errorf("API returned %d: %s", resp.StatusCode(), resp.String()))
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", common.Unavailable(fmt.Errorf("failed to parse response: %w", err))
	}
	if len(result.Choices) == 0 {
		return "", common.Unavailable(errors.New("no choices in response"))
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", common.Unavailable(errors.New("empty response"))
	}

	common.LogDebug("chat completion finished", zap.String("model", g.model), zap.Duration("latency", resp.Time()))
	return content, nil
}
