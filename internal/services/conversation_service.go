package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wenlu-app/wenlu/internal/cachekey"
	"github.com/wenlu-app/wenlu/internal/dialogue"
	"github.com/wenlu-app/wenlu/internal/models"
	"github.com/wenlu-app/wenlu/internal/providers/textgen"
	"github.com/wenlu-app/wenlu/internal/storage"
	"github.com/wenlu-app/wenlu/internal/utils"
)

const (
	contentTypeJSON = "application/json"
	contentTypeMP3  = "audio/mpeg"
)

type ConversationService interface {
	// GenerateText returns the cached conversation for wordID, generating
	// and persisting one on cache miss.
	GenerateText(ctx context.Context, wordID, word, generatorVersion string) (*models.Conversation, error)

	// GetCached returns the cached conversation without ever generating.
	GetCached(ctx context.Context, wordID string) (*models.Conversation, error)
}

type conversationService struct {
	blobs storage.BlobStore
	gen   textgen.Provider
	opts  textgen.Options
	log   *logrus.Logger
}

func NewConversationService(blobs storage.BlobStore, gen textgen.Provider, opts textgen.Options, log *logrus.Logger) ConversationService {
	if opts.Temperature == 0 {
		opts.Temperature = dialogue.DefaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = dialogue.DefaultMaxTokens
	}
	return &conversationService{blobs: blobs, gen: gen, opts: opts, log: log}
}

func (s *conversationService) GenerateText(ctx context.Context, wordID, word, generatorVersion string) (*models.Conversation, error) {
	const op = "ConversationService.GenerateText"

	if wordID == "" || word == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "word_id and word are required", nil)
	}
	if generatorVersion == "" {
		generatorVersion = dialogue.GeneratorVersion
	}

	path := cachekey.TextObjectPath(wordID)

	hit, err := s.blobs.Exists(ctx, path)
	if err != nil {
		// Storage outages surface to the caller instead of being masked
		// as regeneration cost.
		return nil, utils.E(utils.CodeUnavailable, op, "conversation cache is unavailable", err)
	}

	if hit {
		conv, err := s.loadRecord(ctx, path)
		if err == nil {
			return conv, nil
		}
		if utils.IsCode(err, utils.CodeUnavailable) {
			return nil, err
		}
		// A corrupt cached record is treated as a miss and regenerated,
		// same policy as the redis hot cache.
		s.log.WithError(err).WithField("object", path).Warn("cached conversation is corrupt, regenerating")
	}

	raw, err := s.gen.Generate(ctx, dialogue.BuildPrompt(word), s.opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, utils.E(utils.CodeTimeout, op, "text generation timed out", err)
		}
		return nil, utils.E(utils.CodeUpstream, op, "text generation failed", err)
	}

	outcome := dialogue.Parse(raw)
	turns := outcome.Turns
	if len(turns) < models.MinTurns {
		s.log.WithFields(logrus.Fields{
			"word_id":       wordID,
			"parsed_turns":  len(turns),
			"dropped_lines": outcome.DroppedLines,
		}).Warn("generated dialogue unusable, substituting fallback")
		turns = dialogue.FallbackTurns()
	} else if len(turns) > models.MaxTurns {
		turns = turns[:models.MaxTurns]
	}

	conv := &models.Conversation{
		ID:               cachekey.ConversationID(wordID),
		WordID:           wordID,
		Word:             word,
		Turns:            turns,
		GeneratorVersion: generatorVersion,
		GeneratedAt:      time.Now().UTC(),
	}

	// Persist best-effort: a cache-write failure is logged but the
	// generated conversation is still the answer for this request.
	if err := s.persistRecord(ctx, path, conv); err != nil {
		s.log.WithError(err).WithField("object", path).Error("failed to persist conversation")
	}

	return conv, nil
}

func (s *conversationService) GetCached(ctx context.Context, wordID string) (*models.Conversation, error) {
	const op = "ConversationService.GetCached"

	if wordID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "word_id is required", nil)
	}

	path := cachekey.TextObjectPath(wordID)
	hit, err := s.blobs.Exists(ctx, path)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "conversation cache is unavailable", err)
	}
	if !hit {
		return nil, utils.E(utils.CodeNotFound, op, "no conversation generated for this word", nil)
	}
	return s.loadRecord(ctx, path)
}

func (s *conversationService) loadRecord(ctx context.Context, path string) (*models.Conversation, error) {
	const op = "ConversationService.loadRecord"

	data, err := s.blobs.Download(ctx, path)
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
	return &conv, nil
}

func (s *conversationService) persistRecord(ctx context.Context, path string, conv *models.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.blobs.Upload(ctx, path, contentTypeJSON, bytes.NewReader(data))
}
