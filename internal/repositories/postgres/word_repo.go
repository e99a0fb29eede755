package postgres

import (
	"context"
	"errors"

	"github.com/wenlu-app/wenlu/internal/models"
	"github.com/wenlu-app/wenlu/internal/utils"
	"gorm.io/gorm"
)

type WordRepository interface {
	Insert(ctx context.Context, w *models.Word) error
	GetByID(ctx context.Context, id string) (*models.Word, error)
	List(ctx context.Context, limit, offset int) ([]models.Word, error)
}

type wordRepo struct {
	db *gorm.DB
}

func NewWordRepo(db *gorm.DB) WordRepository {
	return &wordRepo{db: db}
}

func (r *wordRepo) Insert(ctx context.Context, w *models.Word) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *wordRepo) GetByID(ctx context.Context, id string) (*models.Word, error) {
	var row models.Word
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *wordRepo) List(ctx context.Context, limit, offset int) ([]models.Word, error) {
	var rows []models.Word
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}
