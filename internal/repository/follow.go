package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, data *entity.Follow) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	GetFollowers(ctx context.Context, userID string, offset, limit int) ([]entity.Follow, error)
	GetFollowing(ctx context.Context, userID string, offset, limit int) ([]entity.Follow, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, followerID, followingID string) error
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error) {
	var result entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID string, offset, limit int) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Where("following_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID string, offset, limit int) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("following_id=?", userID).Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("follower_id=?", userID).Count(&count).Error
	return count, err
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Follow{}, "follower_id=? AND following_id=?", followerID, followingID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
