// Package mock provides a test double for textgen.Provider.
package mock

import (
	"context"
	"sync"

	"github.com/wenlu-app/wenlu/internal/providers/textgen"
)

// GenerateCall records a single invocation of Generate.
type GenerateCall struct {
	Prompt string
	Opts   textgen.Options
}

// Provider is a mock implementation of textgen.Provider.
type Provider struct {
	mu sync.Mutex

	// Response is returned by Generate when Err is nil.
	Response string

	// Err, if non-nil, is returned by Generate.
	Err error

	// GenerateCalls records every call in order.
	GenerateCalls []GenerateCall
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts textgen.Options) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.GenerateCalls = append(p.GenerateCalls, GenerateCall{Prompt: prompt, Opts: opts})
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *Provider) Close() error { return nil }

var _ textgen.Provider = (*Provider)(nil)
