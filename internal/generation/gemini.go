package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pageza/pantrychef/backend/internal/common"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a client for model. An empty model selects DefaultGeminiModel.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiGenerator, error) {
	return newGeminiGenerator(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model, timeout)
}

func newGeminiGenerator(ctx context.Context, cc *genai.ClientConfig, model string, timeout time.Duration) (*GeminiGenerator, error) {
	if cc.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, timeout: timeout}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		common.LogError("Gemini request failed", zap.String("model", g.model), zap.Error(err))
		return "", common.Unavailable(fmt.Errorf("gemini: %w", err))
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", common.Unavailable(errors.New("gemini: empty response"))
	}

	common.LogDebug("Gemini request completed",
		zap.String("model", g.model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("response_bytes", len(text)),
	)
	return text, nil
}
