package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type PrivateMessageRepository interface {
	Create(ctx context.Context, data *entity.PrivateMessage) error
	GetByID(ctx context.Context, id int64) (*entity.PrivateMessage, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.PrivateMessage, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]entity.PrivateMessage, error)
	MarkConversationRead(ctx context.Context, receiverID, senderID string) (int64, error)
}

type privateMessageRepository struct{}

func NewPrivateMessageRepository() *privateMessageRepository {
	return &privateMessageRepository{}
}

func (r *privateMessageRepository) Create(ctx context.Context, data *entity.PrivateMessage) error {
	return xcontext.DB(ctx).Omit("Sender").Create(data).Error
}

func (r *privateMessageRepository) GetByID(ctx context.Context, id int64) (*entity.PrivateMessage, error) {
	var result entity.PrivateMessage
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetListByUserID returns every message sent or received by the user, newest
// first.
func (r *privateMessageRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.PrivateMessage, error) {
	var result []entity.PrivateMessage
	err := xcontext.DB(ctx).
		Where("sender_id=? OR receiver_id=?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetConversation returns the messages between two users, oldest first.
func (r *privateMessageRepository) GetConversation(
	ctx context.Context, userID, otherID string,
) ([]entity.PrivateMessage, error) {
	var result []entity.PrivateMessage
	err := xcontext.DB(ctx).
		Preload("Sender").
		Where("(sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)",
			userID, otherID, otherID, userID).
		Order("created_at, id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *privateMessageRepository) MarkConversationRead(
	ctx context.Context, receiverID, senderID string,
) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.PrivateMessage{}).
		Where("receiver_id=? AND sender_id=? AND is_read=?", receiverID, senderID, false).
		Update("is_read", true)

	return tx.RowsAffected, tx.Error
}
