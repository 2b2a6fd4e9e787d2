package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type MediaRepository interface {
	Create(ctx context.Context, data *entity.Media) error
	GetByPostIDs(ctx context.Context, postIDs []string) ([]entity.Media, error)
	DeleteByIDs(ctx context.Context, postID string, ids []string) (int64, error)
}

type mediaRepository struct{}

func NewMediaRepository() *mediaRepository {
	return &mediaRepository{}
}

func (r *mediaRepository) Create(ctx context.Context, data *entity.Media) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *mediaRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]entity.Media, error) {
	var result []entity.Media
	err := xcontext.DB(ctx).
		Where("post_id IN (?)", postIDs).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteByIDs only removes media belonging to the given post.
func (r *mediaRepository) DeleteByIDs(ctx context.Context, postID string, ids []string) (int64, error) {
	tx := xcontext.DB(ctx).Delete(&entity.Media{}, "post_id=? AND id IN (?)", postID, ids)
	return tx.RowsAffected, tx.Error
}
