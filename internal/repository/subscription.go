package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, data *entity.Subscription) error
	Get(ctx context.Context, subredditID, userID string) (*entity.Subscription, error)
	GetListBySubredditID(ctx context.Context, subredditID string) ([]entity.Subscription, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Subscription, error)
	CountBySubredditID(ctx context.Context, subredditID string) (int64, error)
	Delete(ctx context.Context, subredditID, userID string) error
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() *subscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) Create(ctx context.Context, data *entity.Subscription) error {
	return xcontext.DB(ctx).Omit("Subreddit", "User").Create(data).Error
}

func (r *subscriptionRepository) Get(ctx context.Context, subredditID, userID string) (*entity.Subscription, error) {
	var result entity.Subscription
	err := xcontext.DB(ctx).
		Where("subreddit_id=? AND user_id=?", subredditID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *subscriptionRepository) GetListBySubredditID(
	ctx context.Context, subredditID string,
) ([]entity.Subscription, error) {
	var result []entity.Subscription
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

func (r *subscriptionRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Subscription, error) {
	var result []entity.Subscription
	err := xcontext.DB(ctx).
		Preload("Subreddit").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *subscriptionRepository) CountBySubredditID(ctx context.Context, subredditID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Subscription{}).
		Where("subreddit_id=?", subredditID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subredditID, userID string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Subscription{}, "subreddit_id=? AND user_id=?", subredditID, userID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
