// Package openai implements llm.Generator using the OpenAI Chat Completions API
// or any compatible endpoint.
package openai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/dekleptocracy/campaign-agent/internal/llm"
)

// Options configure the OpenAI adapter.
type Options struct {
	Model       string
	Temperature float64
	APIKey      string
	BaseURL     string
}

// Model wraps the OpenAI client behind llm.Generator.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a model using the official client. Without an APIKey the
// SDK falls back to OPENAI_API_KEY.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
		Temperature: llm.DefaultTemperature,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	return &Model{client: &client, opts: opts}
}

// Name returns the configured model id.
func (m *Model) Name() string { return m.opts.Model }

func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       m.opts.Model,
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(m.opts.Temperature),
	})
	if err != nil {
		return "", llm.Wrap("openai", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", llm.Wrap("openai", llm.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
