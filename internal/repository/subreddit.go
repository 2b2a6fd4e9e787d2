package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type SubredditRepository interface {
	Create(ctx context.Context, data *entity.Subreddit) error
	GetByID(ctx context.Context, id string) (*entity.Subreddit, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Subreddit, error)
	GetByName(ctx context.Context, name string) (*entity.Subreddit, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Subreddit, error)
	GetListByCreator(ctx context.Context, userID string) ([]entity.Subreddit, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type subredditRepository struct{}

func NewSubredditRepository() *subredditRepository {
	return &subredditRepository{}
}

func (r *subredditRepository) Create(ctx context.Context, data *entity.Subreddit) error {
	return xcontext.DB(ctx).Omit("CreatedByUser").Create(data).Error
}

func (r *subredditRepository) GetByID(ctx context.Context, id string) (*entity.Subreddit, error) {
	var result entity.Subreddit
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *subredditRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Subreddit, error) {
	var result []entity.Subreddit
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *subredditRepository) GetByName(ctx context.Context, name string) (*entity.Subreddit, error) {
	var result entity.Subreddit
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *subredditRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Subreddit, error) {
	var result []entity.Subreddit
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *subredditRepository) GetListByCreator(ctx context.Context, userID string) ([]entity.Subreddit, error) {
	var result []entity.Subreddit
	if err := xcontext.DB(ctx).Find(&result, "created_by=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *subredditRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.Subreddit{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *subredditRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Subreddit{}, "id=?", id).Error
}
