package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetListBySubredditID(ctx context.Context, subredditID string, offset, limit int) ([]entity.Post, error)
	GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Post, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
	CountBySubredditID(ctx context.Context, subredditID string) (int64, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	SoftDelete(ctx context.Context, id, reason string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Omit("Author").Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Preload("Author").Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetListBySubredditID(
	ctx context.Context, subredditID string, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("subreddit_id=? AND is_deleted=?", subredditID, false).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByAuthorID(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("author_id=? AND is_deleted=?", authorID, false).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("author_id=? AND is_deleted=?", authorID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) CountBySubredditID(ctx context.Context, subredditID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("subreddit_id=? AND is_deleted=?", subredditID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *postRepository) SoftDelete(ctx context.Context, id, reason string) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(map[string]any{"is_deleted": true, "delete_reason": reason}).Error
}
