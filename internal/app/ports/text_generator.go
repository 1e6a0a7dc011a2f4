package ports

import "context"

// SamplingParams are passed through to the text backend untouched.
type SamplingParams struct {
	Temperature float64
	MaxTokens   int
}

// TextGenerator turns a prompt into free text. Synchronous, bounded by
// the context deadline.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params SamplingParams) (string, error)
}
