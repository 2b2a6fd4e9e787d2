package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/enum"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// maxBanDurationDays caps temporary global bans to a hundred years, longer
// bans must be permanent.
const maxBanDurationDays = 36500

type ModerationDomain interface {
	BanCommunityUser(context.Context, *model.BanCommunityUserRequest) (*model.BanCommunityUserResponse, error)
	UnbanCommunityUser(context.Context, *model.UnbanCommunityUserRequest) (*model.UnbanCommunityUserResponse, error)
	AddModerator(context.Context, *model.AddModeratorRequest) (*model.AddModeratorResponse, error)
	UpdateModerator(context.Context, *model.UpdateModeratorRequest) (*model.UpdateModeratorResponse, error)
	RemoveModerator(context.Context, *model.RemoveModeratorRequest) (*model.RemoveModeratorResponse, error)
	GetModerators(context.Context, *model.GetModeratorsRequest) (*model.GetModeratorsResponse, error)
	RemoveSubscriber(context.Context, *model.RemoveSubscriberRequest) (*model.RemoveSubscriberResponse, error)
	GetSubscribers(context.Context, *model.GetSubscribersRequest) (*model.GetSubscribersResponse, error)
	BanUser(context.Context, *model.BanUserRequest) (*model.BanUserResponse, error)
	UnbanUser(context.Context, *model.UnbanUserRequest) (*model.UnbanUserResponse, error)
}

type moderationDomain struct {
	subredditRepo      repository.SubredditRepository
	moderatorRepo      repository.ModeratorRepository
	subscriptionRepo   repository.SubscriptionRepository
	communityBanRepo   repository.CommunityBanRepository
	userRepo           repository.UserRepository
	permissionResolver *common.PermissionResolver
}

func NewModerationDomain(
	subredditRepo repository.SubredditRepository,
	moderatorRepo repository.ModeratorRepository,
	subscriptionRepo repository.SubscriptionRepository,
	communityBanRepo repository.CommunityBanRepository,
	userRepo repository.UserRepository,
) *moderationDomain {
	return &moderationDomain{
		subredditRepo:      subredditRepo,
		moderatorRepo:      moderatorRepo,
		subscriptionRepo:   subscriptionRepo,
		communityBanRepo:   communityBanRepo,
		userRepo:           userRepo,
		permissionResolver: common.NewPermissionResolver(userRepo, moderatorRepo, subscriptionRepo),
	}
}

func (d *moderationDomain) BanCommunityUser(
	ctx context.Context, req *model.BanCommunityUserRequest,
) (*model.BanCommunityUserResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty reason")
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageUsers); err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, d.userRepo, req.UserID); err != nil {
		return nil, err
	}

	target, err := d.moderatorRepo.Get(ctx, subreddit.ID, req.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get moderator: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil && target.Role == entity.ModeratorRoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot ban the owner of subreddit")
	}

	_, err = d.communityBanRepo.Get(ctx, subreddit.ID, req.UserID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "User is already banned from this subreddit")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get community ban: %v", err)
		return nil, errorx.Unknown
	}

	err = d.communityBanRepo.Create(ctx, &entity.CommunityBan{
		SubredditID: subreddit.ID,
		UserID:      req.UserID,
		Reason:      req.Reason,
		BannedBy:    xcontext.RequestUserID(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community ban: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BanCommunityUserResponse{}, nil
}

func (d *moderationDomain) UnbanCommunityUser(
	ctx context.Context, req *model.UnbanCommunityUserRequest,
) (*model.UnbanCommunityUserResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageUsers); err != nil {
		return nil, err
	}

	if err := d.communityBanRepo.Delete(ctx, subreddit.ID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User is not banned from this subreddit")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete community ban: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnbanCommunityUserResponse{}, nil
}

func (d *moderationDomain) AddModerator(
	ctx context.Context, req *model.AddModeratorRequest,
) (*model.AddModeratorResponse, error) {
	if req.Username == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty username")
	}

	role := entity.ModeratorRoleModerator
	if req.Role != "" {
		var err error
		role, err = enum.ToEnum[entity.ModeratorRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}
	}

	permissions, err := d.resolvePermissions(ctx, req.Permissions)
	if err != nil {
		return nil, err
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageModerators); err != nil {
		return nil, err
	}

	// An owner holds every permission, so only owners and admins can make one.
	if role == entity.ModeratorRoleOwner {
		isOwner, err := d.permissionResolver.IsOwner(ctx, xcontext.RequestUserID(ctx), subreddit.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check owner role: %v", err)
			return nil, errorx.Unknown
		}

		if !isOwner {
			return nil, errorx.New(errorx.PermissionDenied, "Only owner can add another owner")
		}
	}

	target, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	existing, err := d.moderatorRepo.Get(ctx, subreddit.ID, target.ID)
	if err == nil {
		return &model.AddModeratorResponse{
			Moderator:     model.ConvertModerator(existing),
			AlreadyExists: true,
		}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get moderator: %v", err)
		return nil, errorx.Unknown
	}

	moderator := &entity.Moderator{
		SubredditID: subreddit.ID,
		UserID:      target.ID,
		Role:        role,
		Permissions: permissions,
	}
	if err := d.moderatorRepo.Create(ctx, moderator); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create moderator: %v", err)
		return nil, errorx.Unknown
	}

	moderator.User = *target
	return &model.AddModeratorResponse{Moderator: model.ConvertModerator(moderator)}, nil
}

// resolvePermissions grants MANAGE_POSTS by default, but only to a moderator
// added by an admin.
func (d *moderationDomain) resolvePermissions(ctx context.Context, tokens []string) (entity.PermissionSet, error) {
	if len(tokens) == 0 {
		isAdmin, err := d.permissionResolver.IsAdmin(ctx, xcontext.RequestUserID(ctx))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check admin role: %v", err)
			return 0, errorx.Unknown
		}

		if !isAdmin {
			return 0, errorx.New(errorx.BadRequest, "Not allow empty permissions")
		}

		return entity.ManagePosts, nil
	}

	permissions, err := entity.NewPermissionSet(tokens)
	if err != nil {
		return 0, errorx.New(errorx.BadRequest, "Invalid permissions: %v", err)
	}

	return permissions, nil
}

func (d *moderationDomain) UpdateModerator(
	ctx context.Context, req *model.UpdateModeratorRequest,
) (*model.UpdateModeratorResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if len(req.Permissions) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty permissions")
	}

	permissions, err := entity.NewPermissionSet(req.Permissions)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid permissions: %v", err)
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageModerators); err != nil {
		return nil, err
	}

	moderator, err := d.moderatorRepo.Get(ctx, subreddit.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found moderator")
		}

		xcontext.Logger(ctx).Errorf("Cannot get moderator: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.moderatorRepo.UpdatePermissions(ctx, subreddit.ID, req.UserID, permissions); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update moderator permissions: %v", err)
		return nil, errorx.Unknown
	}

	moderator.Permissions = permissions
	return &model.UpdateModeratorResponse{Moderator: model.ConvertModerator(moderator)}, nil
}

// RemoveModerator does not check whether the subreddit keeps an owner.
func (d *moderationDomain) RemoveModerator(
	ctx context.Context, req *model.RemoveModeratorRequest,
) (*model.RemoveModeratorResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageModerators); err != nil {
		return nil, err
	}

	if err := d.moderatorRepo.Delete(ctx, subreddit.ID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found moderator")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete moderator: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveModeratorResponse{}, nil
}

func (d *moderationDomain) GetModerators(
	ctx context.Context, req *model.GetModeratorsRequest,
) (*model.GetModeratorsResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	moderators, err := d.moderatorRepo.GetListBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get moderators: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Moderator{}
	for i := range moderators {
		result = append(result, model.ConvertModerator(&moderators[i]))
	}

	return &model.GetModeratorsResponse{Moderators: result}, nil
}

func (d *moderationDomain) RemoveSubscriber(
	ctx context.Context, req *model.RemoveSubscriberRequest,
) (*model.RemoveSubscriberResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageUsers); err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, d.userRepo, req.UserID); err != nil {
		return nil, err
	}

	isModerator, err := d.permissionResolver.IsModerator(ctx, req.UserID, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check moderator: %v", err)
		return nil, errorx.Unknown
	}

	if isModerator {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot remove a moderator from subscribers")
	}

	if err := d.subscriptionRepo.Delete(ctx, subreddit.ID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User is not subscribed")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete subscription: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveSubscriberResponse{}, nil
}

func (d *moderationDomain) GetSubscribers(
	ctx context.Context, req *model.GetSubscribersRequest,
) (*model.GetSubscribersResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := requireModerate(ctx, d.permissionResolver, subreddit.ID, entity.ManageUsers); err != nil {
		return nil, err
	}

	subscriptions, err := d.subscriptionRepo.GetListBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get subscribers: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Subscriber{}
	for i := range subscriptions {
		result = append(result, model.Subscriber{
			User:         model.ConvertShortUser(&subscriptions[i].User),
			SubscribedAt: subscriptions[i].CreatedAt.Format(model.DefaultTimeLayout),
		})
	}

	return &model.GetSubscribersResponse{Subscribers: result}, nil
}

// BanUser bans the user from the whole platform. A ban without a positive
// duration never expires.
func (d *moderationDomain) BanUser(
	ctx context.Context, req *model.BanUserRequest,
) (*model.BanUserResponse, error) {
	if err := requireAdmin(ctx, d.permissionResolver); err != nil {
		return nil, err
	}

	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty reason")
	}

	if req.DurationDays > maxBanDurationDays {
		return nil, errorx.New(errorx.BadRequest, "Ban duration must not exceed %d days", maxBanDurationDays)
	}

	user, err := getUser(ctx, d.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	if user.ID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot ban yourself")
	}

	var expiresAt sql.NullTime
	if req.DurationDays > 0 {
		expiresAt = sql.NullTime{
			Valid: true,
			Time:  time.Now().AddDate(0, 0, req.DurationDays),
		}
	}

	if err := d.userRepo.Ban(ctx, user.ID, req.Reason, expiresAt); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ban user: %v", err)
		return nil, errorx.Unknown
	}

	user.IsBanned = true
	user.BanReason = req.Reason
	user.BanExpiresAt = expiresAt
	return &model.BanUserResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *moderationDomain) UnbanUser(
	ctx context.Context, req *model.UnbanUserRequest,
) (*model.UnbanUserResponse, error) {
	if err := requireAdmin(ctx, d.permissionResolver); err != nil {
		return nil, err
	}

	user, err := getUser(ctx, d.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsBanned {
		return nil, errorx.New(errorx.BadRequest, "User is not banned")
	}

	if err := d.userRepo.Unban(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unban user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnbanUserResponse{}, nil
}
