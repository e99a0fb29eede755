package models

import (
	"fmt"
	"time"
)

// Turn-count bounds for a generated conversation. Anything outside this
// range never reaches a caller; undersized parses are replaced by the
// canonical fallback and oversized parses are truncated.
const (
	MinTurns = 3
	MaxTurns = 5
)

// Conversation is the generated dialogue artifact cached as a JSON blob.
// The record is read-only after creation except for per-turn AudioURL,
// which is set at most once per turn.
type Conversation struct {
	ID               string             `json:"id"` // wordId + "-" + content hash
	WordID           string             `json:"wordId"`
	Word             string             `json:"word"`
	Turns            []ConversationTurn `json:"turns"`
	GeneratorVersion string             `json:"generatorVersion"`
	GeneratedAt      time.Time          `json:"generatedAt"`
}

// ConversationTurn is one utterance in the dialogue.
type ConversationTurn struct {
	Speaker     string `json:"speaker"` // "A" | "B"
	Chinese     string `json:"chinese"`
	Pinyin      string `json:"pinyin,omitempty"`
	Translation string `json:"translation,omitempty"`
	AudioURL    string `json:"audioUrl"` // empty until synthesized
}

// TurnAudioResult is the wire shape returned by the turn-audio operation.
type TurnAudioResult struct {
	ConversationID string    `json:"conversationId"`
	TurnIndex      int       `json:"turnIndex"`
	AudioURL       string    `json:"audioUrl"`
	Voice          string    `json:"voice"`
	Cached         bool      `json:"cached"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Validate checks the record shape at the JSON-deserialization boundary so a
// corrupt or foreign blob is never trusted as a Conversation.
func (c *Conversation) Validate() error {
	if c.ID == "" || c.WordID == "" {
		return fmt.Errorf("conversation missing id or wordId")
	}
	if n := len(c.Turns); n < MinTurns || n > MaxTurns {
		return fmt.Errorf("conversation has %d turns, want %d..%d", n, MinTurns, MaxTurns)
	}
	for i, t := range c.Turns {
		if t.Speaker == "" {
			return fmt.Errorf("turn %d missing speaker", i)
		}
		if t.Chinese == "" {
			return fmt.Errorf("turn %d missing text", i)
		}
	}
	return nil
}
