package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateLastActive(ctx context.Context, id string, t time.Time) error
	UpdateKarma(ctx context.Context, id string, karma int64) error
	Ban(ctx context.Context, id, reason string, expiresAt sql.NullTime) error
	Unban(ctx context.Context, id string) error
	UnbanExpired(ctx context.Context, now time.Time) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateLastActive(ctx context.Context, id string, t time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("last_active_at", sql.NullTime{Valid: true, Time: t}).Error
}

func (r *userRepository) UpdateKarma(ctx context.Context, id string, karma int64) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("karma", karma).Error
}

func (r *userRepository) Ban(ctx context.Context, id, reason string, expiresAt sql.NullTime) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_banned":      true,
			"ban_reason":     reason,
			"ban_expires_at": expiresAt,
		}).Error
}

func (r *userRepository) Unban(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(unbanFields()).Error
}

// UnbanExpired lifts every temporary ban whose expiry is not after now and
// returns the number of affected users.
func (r *userRepository) UnbanExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("is_banned=? AND ban_expires_at IS NOT NULL AND ban_expires_at<=?", true, now).
		Updates(unbanFields())

	return tx.RowsAffected, tx.Error
}

func unbanFields() map[string]any {
	return map[string]any{
		"is_banned":      false,
		"ban_reason":     "",
		"ban_expires_at": sql.NullTime{},
	}
}
