package llm

import (
	"fmt"
	"strings"
)

// NewClient creates an LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	var backend completer
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		backend, err = newOpenAIBackend(cfg)
	case "openrouter":
		// OpenRouter speaks the OpenAI chat-completions dialect.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://openrouter.ai/api/v1"
		}
		backend, err = newOpenAIBackend(cfg)
	case "anthropic":
		backend, err = newAnthropicBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &client{
		backend: backend,
		limiter: newRateLimiter(cfg.RateLimit),
	}, nil
}
