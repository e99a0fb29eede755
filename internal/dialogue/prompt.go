// Package dialogue builds generation prompts and parses model output into
// conversation turns.
package dialogue

import "fmt"

// GeneratorVersion tags conversation records produced by the current prompt
// template. It is stored on the record but does not participate in the
// cache key.
const GeneratorVersion = "v1"

// Bounded generation defaults. Kept small: a 5-line dialogue fits
// comfortably under 512 tokens.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
)

const promptTemplate = `You are a Chinese language tutor writing a short example dialogue for a vocabulary learner.

Write a dialogue between two speakers, A and B, that uses the word "%s" naturally.

Rules:
- 3 to 5 lines total, alternating between A and B.
- Every line must follow exactly this format:
  A: <chinese sentence> | <pinyin> | <english translation>
- Keep each sentence short and conversational (HSK 1-3 level).
- Output only the dialogue lines. No titles, numbering, or commentary.`

// BuildPrompt returns the generation prompt for a word. Deterministic:
// the same word always yields the same prompt.
func BuildPrompt(word string) string {
	return fmt.Sprintf(promptTemplate, word)
}
