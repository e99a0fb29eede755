// Package cachekey derives the deterministic identifiers and object paths
// used to address conversation text and per-turn audio in the blob store.
//
// The word key intentionally covers the word ID only: the same word always
// maps to the same public conversation ID and storage path, regardless of
// generator version or prompt wording. Invalidating cached conversations
// after a prompt change is an operational action (bump the path prefix or
// purge objects), not an automatic one.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	// prefix is the top-level object namespace for conversation artifacts.
	prefix = "convo"

	wordKeyLen  = 12
	turnHashLen = 10
)

// Derive returns the short content-addressed key for a word ID. Pure and
// deterministic: the same input always yields the same key.
func Derive(wordID string) string {
	sum := sha256.Sum256([]byte(wordID))
	return hex.EncodeToString(sum[:])[:wordKeyLen]
}

// TurnHash returns the short hash of a turn's exact text. Different turn
// text under the same word must map to different audio objects.
func TurnHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:turnHashLen]
}

// ConversationID builds the public conversation identifier.
func ConversationID(wordID string) string {
	return wordID + "-" + Derive(wordID)
}

// TextObjectPath is the blob path of a word's conversation JSON record.
func TextObjectPath(wordID string) string {
	return fmt.Sprintf("%s/%s/%s.json", prefix, wordID, Derive(wordID))
}

// AudioObjectPath is the blob path of one turn's synthesized MP3. The turn
// index is 1-based in the object name for readability.
func AudioObjectPath(wordID string, turnIndex int, turnText string) string {
	return fmt.Sprintf("%s/%s/%s-turn%d-%s.mp3", prefix, wordID, Derive(wordID), turnIndex+1, TurnHash(turnText))
}
