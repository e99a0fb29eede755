package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wenlu-app/wenlu/internal/cache"
	"github.com/wenlu-app/wenlu/internal/models"
	pgrepo "github.com/wenlu-app/wenlu/internal/repositories/postgres"
	"github.com/wenlu-app/wenlu/internal/utils"
	"gorm.io/datatypes"
)

const wordCacheTTL = 10 * time.Minute

type WordService interface {
	Create(ctx context.Context, chinese, pinyin, english string, tagsJSON []byte) (*models.Word, error)
	Get(ctx context.Context, id string) (*models.Word, error)
	List(ctx context.Context, limit, offset int) ([]models.Word, error)
}

type wordService struct {
	words pgrepo.WordRepository
	hot   cache.Cache // optional; nil disables the read-through layer
}

func NewWordService(words pgrepo.WordRepository, hot cache.Cache) WordService {
	return &wordService{words: words, hot: hot}
}

func wordCacheKey(id string) string { return "word:" + id }

func (s *wordService) Create(ctx context.Context, chinese, pinyin, english string, tagsJSON []byte) (*models.Word, error) {
	const op = "WordService.Create"

	if chinese == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "chinese is required", nil)
	}

	now := time.Now().UTC()
	row := &models.Word{
		ID:        uuid.NewString(),
		Chinese:   chinese,
		Pinyin:    pinyin,
		English:   english,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(tagsJSON) > 0 {
		row.Tags = datatypes.JSON(tagsJSON)
	}

	if err := s.words.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to insert word", err)
	}
	return row, nil
}

func (s *wordService) Get(ctx context.Context, id string) (*models.Word, error) {
	const op = "WordService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "word_id is required", nil)
	}

	if s.hot != nil {
		var cached models.Word
		if hit, err := s.hot.GetJSON(ctx, wordCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "word not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get word", err)
	}

	if s.hot != nil {
		_ = s.hot.SetJSON(ctx, wordCacheKey(id), row, wordCacheTTL)
	}
	return row, nil
}

func (s *wordService) List(ctx context.Context, limit, offset int) ([]models.Word, error) {
	const op = "WordService.List"

	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.words.List(ctx, limit, offset)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list words", err)
	}
	return rows, nil
}
