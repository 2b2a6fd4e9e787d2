package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	followRepo         repository.FollowRepository
	userRepo           repository.UserRepository
	notificationDomain NotificationDomain
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notificationDomain NotificationDomain,
) *followDomain {
	return &followDomain{
		followRepo:         followRepo,
		userRepo:           userRepo,
		notificationDomain: notificationDomain,
	}
}

func (d *followDomain) Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if req.UserID == followerID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := getUser(ctx, d.userRepo, req.UserID); err != nil {
		return nil, err
	}

	_, err := d.followRepo.Get(ctx, followerID, req.UserID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already followed this user")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followRepo.Create(ctx, &entity.Follow{FollowerID: followerID, FollowingID: req.UserID}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	follower, err := d.userRepo.GetByID(ctx, followerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	notifyQuietly(ctx, d.notificationDomain, NotifyParams{
		ActorID:     followerID,
		RecipientID: req.UserID,
		Type:        entity.NotificationFollow,
		Content:     fmt.Sprintf("%s started following you", follower.Username),
		SourceID:    followerID,
		SourceType:  entity.SourceUser,
	})

	return &model.FollowResponse{}, nil
}

func (d *followDomain) Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if err := d.followRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not followed this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

// paging turns a one-based page into an offset.
func paging(ctx context.Context, page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}

	limit = common.ClampLimit(ctx, limit)
	return page, limit, (page - 1) * limit
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if _, err := getUser(ctx, d.userRepo, userID); err != nil {
		return nil, err
	}

	page, limit, offset := paging(ctx, req.Page, req.Limit)
	follows, err := d.followRepo.GetFollowers(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if _, err := getUser(ctx, d.userRepo, userID); err != nil {
		return nil, err
	}

	page, limit, offset := paging(ctx, req.Page, req.Limit)
	follows, err := d.followRepo.GetFollowing(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// shortUsers keeps the order of ids.
func (d *followDomain) shortUsers(ctx context.Context, ids []string) ([]model.ShortUser, error) {
	result := []model.ShortUser{}
	if len(ids) == 0 {
		return result, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	for _, id := range ids {
		if u, ok := userMap[id]; ok {
			result = append(result, model.ConvertShortUser(u))
		}
	}

	return result, nil
}
