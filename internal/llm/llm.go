// Package llm defines the text generation capability the pipeline depends on.
// Vendor adapters live in the gemini, openai and anthropic subpackages.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrGeneration matches every *GenerationError.
	ErrGeneration = errors.New("generation failed")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("model returned no text")
)

// DefaultTemperature is used by every adapter unless overridden.
const DefaultTemperature = 0.8

// Generator turns a natural-language instruction into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GenerationError reports a failed call to the upstream model.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrGeneration) match any GenerationError.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// Wrap tags err with the provider name. nil stays nil.
func Wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return err
	}
	return &GenerationError{Provider: provider, Err: err}
}

// MockGenerator is an in-memory Generator for tests and dry runs. It records
// every prompt it receives.
type MockGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

// NewMockGenerator returns a generator that always answers response.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{response: response}
}

// NewFailingGenerator returns a generator that always fails with err.
func NewFailingGenerator(err error) *MockGenerator {
	return &MockGenerator{err: err}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", Wrap("mock", err)
	}
	if m.err != nil {
		return "", Wrap("mock", m.err)
	}
	return m.response, nil
}

// Prompts returns a copy of every prompt seen so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
