package textgen

import "context"

// Options bound a single generation call.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int32
}

type Provider interface {
	// Generate returns the model's full text response for prompt.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}
