package tts

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

type GoogleTTS struct {
	c *texttospeech.Client

	// Defaults applied when Options leaves them empty.
	LanguageCode string
	Voice        string
}

func NewGoogleTTS(ctx context.Context) (*GoogleTTS, error) {
	c, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleTTS{
		c:            c,
		LanguageCode: "cmn-CN",
		Voice:        "cmn-CN-Wavenet-A",
	}, nil
}

func (g *GoogleTTS) Close() error { return g.c.Close() }

func (g *GoogleTTS) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	lang := opts.LanguageCode
	if lang == "" {
		lang = g.LanguageCode
	}
	voice := opts.Voice
	if voice == "" {
		voice = g.Voice
	}

	cfg := &ttspb.AudioConfig{AudioEncoding: ttspb.AudioEncoding_MP3}
	if opts.SpeakingRate > 0 {
		cfg.SpeakingRate = opts.SpeakingRate
	}

	resp, err := g.c.SynthesizeSpeech(ctx, &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         voice,
		},
		AudioConfig: cfg,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("google tts: empty audio for voice %s", voice)
	}
	return resp.AudioContent, nil
}
