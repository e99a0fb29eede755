package tts

import "context"

// Options select the voice for one synthesis call.
type Options struct {
	// Voice is the provider voice name, ex: "cmn-CN-Wavenet-A".
	Voice string
	// LanguageCode ex: "cmn-CN". Defaults to the provider's configured language.
	LanguageCode string
	// SpeakingRate in [0.25, 4.0]; 0 means provider default.
	SpeakingRate float64
}

type Provider interface {
	// Synthesize returns encoded MP3 bytes for text.
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
	Close() error
}
