package common

import (
	"context"
	"errors"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"gorm.io/gorm"
)

// PermissionResolver answers whether a user may moderate or post in a
// subreddit.
type PermissionResolver struct {
	userRepo         repository.UserRepository
	moderatorRepo    repository.ModeratorRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewPermissionResolver(
	userRepo repository.UserRepository,
	moderatorRepo repository.ModeratorRepository,
	subscriptionRepo repository.SubscriptionRepository,
) *PermissionResolver {
	return &PermissionResolver{
		userRepo:         userRepo,
		moderatorRepo:    moderatorRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// CanModerate grants global admins, subreddit owners, moderators holding ALL
// and moderators holding the given permission.
func (r *PermissionResolver) CanModerate(
	ctx context.Context, userID, subredditID string, perm entity.PermissionSet,
) (bool, error) {
	isAdmin, err := r.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}

	if isAdmin {
		return true, nil
	}

	moderator, err := r.moderatorRepo.Get(ctx, subredditID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	if moderator.Role == entity.ModeratorRoleOwner {
		return true, nil
	}

	if moderator.Permissions.Has(entity.AllPermissions) {
		return true, nil
	}

	return moderator.Permissions.Has(perm), nil
}

// CanPost grants moderators of any role and subscribers.
func (r *PermissionResolver) CanPost(ctx context.Context, userID, subredditID string) (bool, error) {
	isModerator, err := r.IsModerator(ctx, userID, subredditID)
	if err != nil {
		return false, err
	}

	if isModerator {
		return true, nil
	}

	_, err = r.subscriptionRepo.Get(ctx, subredditID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// IsOwner reports whether the user is an admin or an OWNER of the subreddit.
func (r *PermissionResolver) IsOwner(ctx context.Context, userID, subredditID string) (bool, error) {
	isAdmin, err := r.IsAdmin(ctx, userID)
	if err != nil || isAdmin {
		return isAdmin, err
	}

	moderator, err := r.moderatorRepo.Get(ctx, subredditID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return moderator.Role == entity.ModeratorRoleOwner, nil
}

func (r *PermissionResolver) IsModerator(ctx context.Context, userID, subredditID string) (bool, error) {
	_, err := r.moderatorRepo.Get(ctx, subredditID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *PermissionResolver) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return user.IsAdmin, nil
}
