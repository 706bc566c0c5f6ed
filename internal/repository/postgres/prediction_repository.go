package postgres

import (
	"context"
	"fmt"

	"partyPredictor/business/predict"
	"partyPredictor/domain"

	"gorm.io/gorm"
)

type PredictionRepository struct {
	DB *gorm.DB
}

var _ predict.PredictionRepository = (*PredictionRepository)(nil)

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{DB: db}
}

func (r *PredictionRepository) SaveEvent(ctx context.Context, event domain.PredictionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save prediction event: %w", err)
	}

	return nil
}

// FindRecent returns the newest events first, optionally for one handle.
func (r *PredictionRepository) FindRecent(ctx context.Context, handle string, limit int) ([]domain.PredictionEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx)
	if handle != "" {
		query = query.Where("handle = ?", handle)
	}

	var events []domain.PredictionEvent
	if err := query.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to query prediction events: %w", err)
	}

	return events, nil
}
