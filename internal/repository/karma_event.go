package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type KarmaEventRepository interface {
	Create(ctx context.Context, data *entity.KarmaEvent) error
	SumByUserID(ctx context.Context, userID string) (int64, error)
}

type karmaEventRepository struct{}

func NewKarmaEventRepository() *karmaEventRepository {
	return &karmaEventRepository{}
}

func (r *karmaEventRepository) Create(ctx context.Context, data *entity.KarmaEvent) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *karmaEventRepository) SumByUserID(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.KarmaEvent{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
