package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubredditDomain interface {
	Create(context.Context, *model.CreateSubredditRequest) (*model.CreateSubredditResponse, error)
	GetList(context.Context, *model.GetSubredditsRequest) (*model.GetSubredditsResponse, error)
	Get(context.Context, *model.GetSubredditRequest) (*model.GetSubredditResponse, error)
	UpdateByID(context.Context, *model.UpdateSubredditRequest) (*model.UpdateSubredditResponse, error)
	DeleteByID(context.Context, *model.DeleteSubredditRequest) (*model.DeleteSubredditResponse, error)
	Subscribe(context.Context, *model.SubscribeRequest) (*model.SubscribeResponse, error)
	Unsubscribe(context.Context, *model.UnsubscribeRequest) (*model.UnsubscribeResponse, error)
	GetSubscribed(context.Context, *model.GetSubscribedSubredditsRequest) (*model.GetSubscribedSubredditsResponse, error)
	GetPosts(context.Context, *model.GetSubredditPostsRequest) (*model.GetSubredditPostsResponse, error)
}

type subredditDomain struct {
	subredditRepo      repository.SubredditRepository
	moderatorRepo      repository.ModeratorRepository
	subscriptionRepo   repository.SubscriptionRepository
	communityBanRepo   repository.CommunityBanRepository
	postRepo           repository.PostRepository
	permissionResolver *common.PermissionResolver
	viewer             contentViewer
}

func NewSubredditDomain(
	subredditRepo repository.SubredditRepository,
	moderatorRepo repository.ModeratorRepository,
	subscriptionRepo repository.SubscriptionRepository,
	communityBanRepo repository.CommunityBanRepository,
	postRepo repository.PostRepository,
	mediaRepo repository.MediaRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *subredditDomain {
	return &subredditDomain{
		subredditRepo:      subredditRepo,
		moderatorRepo:      moderatorRepo,
		subscriptionRepo:   subscriptionRepo,
		communityBanRepo:   communityBanRepo,
		postRepo:           postRepo,
		permissionResolver: common.NewPermissionResolver(userRepo, moderatorRepo, subscriptionRepo),
		viewer:             newContentViewer(mediaRepo, voteRepo, commentRepo),
	}
}

func (d *subredditDomain) Create(
	ctx context.Context, req *model.CreateSubredditRequest,
) (*model.CreateSubredditResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	_, err := d.subredditRepo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Subreddit name is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get subreddit by name: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	subreddit := &entity.Subreddit{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		Rules:       req.Rules,
		Theme:       req.Theme,
		CreatedBy:   userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.subredditRepo.Create(ctx, subreddit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create subreddit: %v", err)
		return nil, errorx.Unknown
	}

	err = d.moderatorRepo.Create(ctx, &entity.Moderator{
		SubredditID: subreddit.ID,
		UserID:      userID,
		Role:        entity.ModeratorRoleOwner,
		Permissions: entity.AllPermissions,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create owner of subreddit: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit subreddit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateSubredditResponse{Subreddit: model.ConvertSubreddit(subreddit)}, nil
}

func (d *subredditDomain) GetList(
	ctx context.Context, req *model.GetSubredditsRequest,
) (*model.GetSubredditsResponse, error) {
	subreddits, err := d.subredditRepo.GetList(ctx, req.Offset, common.ClampLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get subreddit list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Subreddit{}
	for i := range subreddits {
		result = append(result, model.ConvertSubreddit(&subreddits[i]))
	}

	return &model.GetSubredditsResponse{Subreddits: result}, nil
}

func (d *subredditDomain) Get(
	ctx context.Context, req *model.GetSubredditRequest,
) (*model.GetSubredditResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.ID)
	if err != nil {
		return nil, err
	}

	subscriberCount, err := d.subscriptionRepo.CountBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count subscribers: %v", err)
		return nil, errorx.Unknown
	}

	postCount, err := d.postRepo.CountBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	moderators, err := d.moderatorRepo.GetListBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get moderators: %v", err)
		return nil, errorx.Unknown
	}

	clientModerators := []model.Moderator{}
	for i := range moderators {
		clientModerators = append(clientModerators, model.ConvertModerator(&moderators[i]))
	}

	isSubscribed := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		_, err := d.subscriptionRepo.Get(ctx, subreddit.ID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get subscription: %v", err)
			return nil, errorx.Unknown
		}

		isSubscribed = err == nil
	}

	return &model.GetSubredditResponse{
		Subreddit:       model.ConvertSubreddit(subreddit),
		SubscriberCount: subscriberCount,
		PostCount:       postCount,
		Moderators:      clientModerators,
		IsSubscribed:    isSubscribed,
	}, nil
}

func (d *subredditDomain) requireModerator(ctx context.Context, subredditID string) error {
	userID := xcontext.RequestUserID(ctx)
	isModerator, err := d.permissionResolver.IsModerator(ctx, userID, subredditID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check moderator: %v", err)
		return errorx.Unknown
	}

	if isModerator {
		return nil
	}

	return requireAdmin(ctx, d.permissionResolver)
}

func (d *subredditDomain) UpdateByID(
	ctx context.Context, req *model.UpdateSubredditRequest,
) (*model.UpdateSubredditResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireModerator(ctx, subreddit.ID); err != nil {
		return nil, err
	}

	data := structs.Map(req)
	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.subredditRepo.UpdateByID(ctx, subreddit.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update subreddit: %v", err)
		return nil, errorx.Unknown
	}

	subreddit, err = getSubreddit(ctx, d.subredditRepo, subreddit.ID)
	if err != nil {
		return nil, err
	}

	return &model.UpdateSubredditResponse{Subreddit: model.ConvertSubreddit(subreddit)}, nil
}

func (d *subredditDomain) DeleteByID(
	ctx context.Context, req *model.DeleteSubredditRequest,
) (*model.DeleteSubredditResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireModerator(ctx, subreddit.ID); err != nil {
		return nil, err
	}

	if err := d.subredditRepo.DeleteByID(ctx, subreddit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete subreddit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteSubredditResponse{}, nil
}

func (d *subredditDomain) Subscribe(
	ctx context.Context, req *model.SubscribeRequest,
) (*model.SubscribeResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if err := checkCommunityBan(ctx, d.communityBanRepo, subreddit.ID, userID); err != nil {
		return nil, err
	}

	_, err = d.subscriptionRepo.Get(ctx, subreddit.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already subscribed")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get subscription: %v", err)
		return nil, errorx.Unknown
	}

	err = d.subscriptionRepo.Create(ctx, &entity.Subscription{SubredditID: subreddit.ID, UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create subscription: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubscribeResponse{}, nil
}

func (d *subredditDomain) Unsubscribe(
	ctx context.Context, req *model.UnsubscribeRequest,
) (*model.UnsubscribeResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	if err := d.subscriptionRepo.Delete(ctx, subreddit.ID, xcontext.RequestUserID(ctx)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not subscribed")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete subscription: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnsubscribeResponse{}, nil
}

func (d *subredditDomain) GetSubscribed(
	ctx context.Context, req *model.GetSubscribedSubredditsRequest,
) (*model.GetSubscribedSubredditsResponse, error) {
	subscriptions, err := d.subscriptionRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get subscriptions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Subreddit{}
	for i := range subscriptions {
		result = append(result, model.ConvertSubreddit(&subscriptions[i].Subreddit))
	}

	return &model.GetSubscribedSubredditsResponse{Subreddits: result}, nil
}

func (d *subredditDomain) GetPosts(
	ctx context.Context, req *model.GetSubredditPostsRequest,
) (*model.GetSubredditPostsResponse, error) {
	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.ID)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetListBySubredditID(ctx, subreddit.ID, req.Offset, common.ClampLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.viewer.viewPosts(ctx, xcontext.RequestUserID(ctx), posts)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetSubredditPostsResponse{Posts: clientPosts}, nil
}

// checkCommunityBan rejects users banned from the subreddit. Existing
// subscriptions and posts of a banned user are left untouched.
func checkCommunityBan(
	ctx context.Context, communityBanRepo repository.CommunityBanRepository, subredditID, userID string,
) error {
	ban, err := communityBanRepo.Get(ctx, subredditID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get community ban: %v", err)
		return errorx.Unknown
	}

	return errorx.New(errorx.PermissionDenied, "You are banned from this subreddit").
		WithDetail(map[string]string{"reason": ban.Reason})
}
