package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityBanRepository interface {
	Create(ctx context.Context, data *entity.CommunityBan) error
	Get(ctx context.Context, subredditID, userID string) (*entity.CommunityBan, error)
	Delete(ctx context.Context, subredditID, userID string) error
}

type communityBanRepository struct{}

func NewCommunityBanRepository() *communityBanRepository {
	return &communityBanRepository{}
}

func (r *communityBanRepository) Create(ctx context.Context, data *entity.CommunityBan) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityBanRepository) Get(ctx context.Context, subredditID, userID string) (*entity.CommunityBan, error) {
	var result entity.CommunityBan
	err := xcontext.DB(ctx).
		Where("subreddit_id=? AND user_id=?", subredditID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityBanRepository) Delete(ctx context.Context, subredditID, userID string) error {
	tx := xcontext.DB(ctx).Delete(&entity.CommunityBan{}, "subreddit_id=? AND user_id=?", subredditID, userID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
