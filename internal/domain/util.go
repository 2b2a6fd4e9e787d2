package domain

import (
	"context"
	"errors"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func getSubreddit(
	ctx context.Context, subredditRepo repository.SubredditRepository, id string,
) (*entity.Subreddit, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty subreddit id")
	}

	subreddit, err := subredditRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found subreddit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get subreddit: %v", err)
		return nil, errorx.Unknown
	}

	return subreddit, nil
}

func getUser(ctx context.Context, userRepo repository.UserRepository, id string) (*entity.User, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	user, err := userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

// requireModerate returns PermissionDenied unless the request user can
// moderate the subreddit with perm.
func requireModerate(
	ctx context.Context, resolver *common.PermissionResolver, subredditID string, perm entity.PermissionSet,
) error {
	ok, err := resolver.CanModerate(ctx, xcontext.RequestUserID(ctx), subredditID, perm)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check moderate permission: %v", err)
		return errorx.Unknown
	}

	if !ok {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func requireAdmin(ctx context.Context, resolver *common.PermissionResolver) error {
	ok, err := resolver.IsAdmin(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check admin role: %v", err)
		return errorx.Unknown
	}

	if !ok {
		return errorx.New(errorx.PermissionDenied, "Only admin can do this action")
	}

	return nil
}
