// Package mock provides a test double for tts.Provider.
package mock

import (
	"context"
	"sync"

	"github.com/wenlu-app/wenlu/internal/providers/tts"
)

// SynthesizeCall records a single invocation of Synthesize.
type SynthesizeCall struct {
	Text string
	Opts tts.Options
}

// Provider is a mock implementation of tts.Provider.
type Provider struct {
	mu sync.Mutex

	// Audio is returned by Synthesize when Err is nil.
	Audio []byte

	// Err, if non-nil, is returned by Synthesize.
	Err error

	// SynthesizeCalls records every call in order.
	SynthesizeCalls []SynthesizeCall
}

func (p *Provider) Synthesize(ctx context.Context, text string, opts tts.Options) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SynthesizeCalls = append(p.SynthesizeCalls, SynthesizeCall{Text: text, Opts: opts})
	if p.Err != nil {
		return nil, p.Err
	}
	out := make([]byte, len(p.Audio))
	copy(out, p.Audio)
	return out, nil
}

func (p *Provider) Close() error { return nil }

var _ tts.Provider = (*Provider)(nil)
