package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ModeratorRepository interface {
	Create(ctx context.Context, data *entity.Moderator) error
	Get(ctx context.Context, subredditID, userID string) (*entity.Moderator, error)
	GetListBySubredditID(ctx context.Context, subredditID string) ([]entity.Moderator, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Moderator, error)
	UpdatePermissions(ctx context.Context, subredditID, userID string, permissions entity.PermissionSet) error
	Delete(ctx context.Context, subredditID, userID string) error
}

type moderatorRepository struct{}

func NewModeratorRepository() *moderatorRepository {
	return &moderatorRepository{}
}

func (r *moderatorRepository) Create(ctx context.Context, data *entity.Moderator) error {
	return xcontext.DB(ctx).Omit("Subreddit", "User").Create(data).Error
}

func (r *moderatorRepository) Get(ctx context.Context, subredditID, userID string) (*entity.Moderator, error) {
	var result entity.Moderator
	err := xcontext.DB(ctx).
		Preload("User").
		Where("subreddit_id=? AND user_id=?", subredditID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *moderatorRepository) GetListBySubredditID(ctx context.Context, subredditID string) ([]entity.Moderator, error) {
	var result []entity.Moderator
	err := xcontext.DB(ctx).
		Preload("User").
		Where("subreddit_id=?", subredditID).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *moderatorRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Moderator, error) {
	var result []entity.Moderator
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *moderatorRepository) UpdatePermissions(
	ctx context.Context, subredditID, userID string, permissions entity.PermissionSet,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Moderator{}).
		Where("subreddit_id=? AND user_id=?", subredditID, userID).
		Update("permissions", permissions)
	if tx.Error != nil {
		return tx.Error
	}

	return nil
}

func (r *moderatorRepository) Delete(ctx context.Context, subredditID, userID string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Moderator{}, "subreddit_id=? AND user_id=?", subredditID, userID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
