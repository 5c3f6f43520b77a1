package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks cfg against the requirements of its environment.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.Server.Port == "" {
		add("SERVER_PORT", "must be set")
	}
	if cfg.Database.URL == "" {
		add("DATABASE_URL", "must be set")
	}
	if cfg.JWT.Secret == "" {
		add("JWT_SECRET", "must be set")
	}
	if cfg.JWT.AccessTokenExpireMinutes <= 0 {
		add("ACCESS_TOKEN_EXPIRE_MINUTES", "must be positive")
	}

	switch cfg.LLM.Provider {
	case ProviderGemini:
		if cfg.Env == Production && cfg.LLM.GeminiAPIKey == "" {
			add("GEMINI_API_KEY", "required when LLM_PROVIDER=gemini")
		}
	case ProviderDeepSeek:
		if cfg.Env == Production && cfg.LLM.DeepSeekAPIKey == "" {
			add("DEEPSEEK_API_KEY", "required when LLM_PROVIDER=deepseek")
		}
		if cfg.LLM.DeepSeekAPIURL == "" {
			add("DEEPSEEK_API_URL", "must be set")
		}
	default:
		add("LLM_PROVIDER", fmt.Sprintf("unknown provider %q", cfg.LLM.Provider))
	}
	if cfg.LLM.Timeout <= 0 {
		add("LLM_TIMEOUT", "must be positive")
	}

	if cfg.RateLimit.Generations <= 0 {
		add("RATE_LIMIT_GENERATIONS", "must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}

	if cfg.Log.Mode != "console" && cfg.Log.Mode != "json" {
		add("LOG_MODE", "must be console or json")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
