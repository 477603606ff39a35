// Package llm abstracts the language-model providers used for the
// optional correction-rewrite pass.
package llm

import (
	"context"

	"github.com/rotisserie/eris"
)

// Provider is a minimal chat-completion interface. The rewrite pass is
// best effort: callers treat any error as "keep the heuristic output".
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// NewProvider builds the configured provider. An empty provider name
// means the rewrite pass is disabled and returns (nil, nil).
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return newOpenAIProvider(cfg)
	case "anthropic":
		return newAnthropicProvider(cfg)
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
