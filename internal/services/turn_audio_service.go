package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wenlu-app/wenlu/internal/cachekey"
	"github.com/wenlu-app/wenlu/internal/models"
	"github.com/wenlu-app/wenlu/internal/providers/tts"
	"github.com/wenlu-app/wenlu/internal/storage"
	"github.com/wenlu-app/wenlu/internal/utils"
)

type TurnAudioService interface {
	// GenerateTurnAudio synthesizes (or reuses) audio for one turn of an
	// already-generated conversation and records its URL on the turn.
	GenerateTurnAudio(ctx context.Context, wordID string, turnIndex int, text, voice string) (*models.TurnAudioResult, error)
}

type turnAudioService struct {
	blobs storage.BlobStore
	synth tts.Provider
	log   *logrus.Logger
}

func NewTurnAudioService(blobs storage.BlobStore, synth tts.Provider, log *logrus.Logger) TurnAudioService {
	return &turnAudioService{blobs: blobs, synth: synth, log: log}
}

func (s *turnAudioService) GenerateTurnAudio(ctx context.Context, wordID string, turnIndex int, text, voice string) (*models.TurnAudioResult, error) {
	const op = "TurnAudioService.GenerateTurnAudio"

	if wordID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "word_id is required", nil)
	}
	if turnIndex < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "turn_index must not be negative", nil)
	}

	textPath := cachekey.TextObjectPath(wordID)

	hit, err := s.blobs.Exists(ctx, textPath)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "conversation cache is unavailable", err)
	}
	if !hit {
		return nil, utils.E(utils.CodeNotFound, op, "generate conversation text before audio", nil)
	}

	data, err := s.blobs.Download(ctx, textPath)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to read conversation record", err)
	}
	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "conversation record is not valid JSON", err)
	}
	if err := conv.Validate(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "conversation record failed validation", err)
	}

	if turnIndex >= len(conv.Turns) {
		return nil, utils.E(utils.CodeNotFound, op, "turn index out of range", nil)
	}
	turn := &conv.Turns[turnIndex]

	// Idempotence: once a turn carries audio, repeat calls are free.
	if turn.AudioURL != "" {
		return &models.TurnAudioResult{
			ConversationID: conv.ID,
			TurnIndex:      turnIndex,
			AudioURL:       turn.AudioURL,
			Voice:          voice,
			Cached:         true,
			GeneratedAt:    time.Now().UTC(),
		}, nil
	}

	if text == "" {
		text = turn.Chinese
	}

	audioPath := cachekey.AudioObjectPath(wordID, turnIndex, text)

	audioExists, err := s.blobs.Exists(ctx, audioPath)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "audio cache is unavailable", err)
	}

	if !audioExists {
		audio, err := s.synth.Synthesize(ctx, text, tts.Options{Voice: voice})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, utils.E(utils.CodeTimeout, op, "speech synthesis timed out", err)
			}
			return nil, utils.E(utils.CodeUpstream, op, "speech synthesis failed", err)
		}
		if err := s.blobs.Upload(ctx, audioPath, contentTypeMP3, bytes.NewReader(audio)); err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to store synthesized audio", err)
		}
	} else {
		// Leftover from a prior attempt whose record update failed:
		// reuse the blob and just repair the record below.
		s.log.WithFields(logrus.Fields{
			"word_id":    wordID,
			"turn_index": turnIndex,
		}).Info("audio blob already present, repairing conversation record")
	}

	turn.AudioURL = s.blobs.PublicURL(audioPath)

	updated, err := json.Marshal(&conv)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode conversation record", err)
	}
	if err := s.blobs.Upload(ctx, textPath, contentTypeJSON, bytes.NewReader(updated)); err != nil {
		// The audio blob is already durable; the next call for this turn
		// finds it, skips synthesis, and repairs the record.
		return nil, utils.E(utils.CodeUnavailable, op, "failed to update conversation record", err)
	}

	return &models.TurnAudioResult{
		ConversationID: conv.ID,
		TurnIndex:      turnIndex,
		AudioURL:       turn.AudioURL,
		Voice:          voice,
		Cached:         false,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}
