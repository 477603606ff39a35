package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rotisserie/eris"
)

type openAIProvider struct {
	client *openai.Client
	cfg    Config
}

func newOpenAIProvider(cfg Config) (*openAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, eris.New("llm: openai api key is required")
	}
	return &openAIProvider{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
	}, nil
}

func (p *openAIProvider) Name() string { return "openai" }

func (p *openAIProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	model := p.cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: openai completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("llm: openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
