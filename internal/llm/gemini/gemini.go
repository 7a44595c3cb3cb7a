// Package gemini implements llm.Generator on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dekleptocracy/campaign-agent/internal/llm"
)

// DefaultModel is the model the pipeline was tuned against.
const DefaultModel = "gemini-1.5-flash"

// Options configure the Gemini adapter.
type Options struct {
	Model       string
	Temperature float32
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

// Model wraps the Gemini generateContent API.
type Model struct {
	client *genai.Client
	opts   Options
}

// NewModel creates a client for the Gemini Developer API.
func NewModel(ctx context.Context, apiKey string, optFns ...func(o *Options)) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	opts := Options{
		Model:       DefaultModel,
		Temperature: llm.DefaultTemperature,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewModelFromClient(client, opts), nil
}

// NewModelFromClient wraps an existing client.
func NewModelFromClient(client *genai.Client, opts Options) *Model {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Model{client: client, opts: opts}
}

// Name returns the configured model id.
func (m *Model) Name() string { return m.opts.Model }

func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(m.opts.Temperature),
	})
	if err != nil {
		return "", llm.Wrap("gemini", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", llm.Wrap("gemini", llm.ErrEmptyResponse)
	}
	return text, nil
}
