// Package generation calls external text-completion services.
package generation

import (
	"context"
	"fmt"

	"github.com/pageza/pantrychef/backend/config"
)

// Generator sends a prompt to a text-completion service and returns the raw reply.
// Implementations make exactly one attempt and report every failure as
// common.ErrGenerationUnavailable.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderDeepSeek:
		return NewChatCompletionsGenerator(cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.Timeout), nil
	case config.ProviderGemini, "":
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
