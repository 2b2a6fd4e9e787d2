package domain

import (
	"context"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"github.com/threadhub-lab/backend/pkg/xredis"
)

const profileRecentItems = 5

type UserDomain interface {
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	GetPosts(context.Context, *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
	GetComments(context.Context, *model.GetUserCommentsRequest) (*model.GetUserCommentsResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	karmaDomain KarmaDomain
	redisClient xredis.Client
	viewer      contentViewer
}

func NewUserDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	mediaRepo repository.MediaRepository,
	voteRepo repository.VoteRepository,
	karmaDomain KarmaDomain,
	redisClient xredis.Client,
) *userDomain {
	return &userDomain{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		karmaDomain: karmaDomain,
		redisClient: redisClient,
		viewer:      newContentViewer(mediaRepo, voteRepo, commentRepo),
	}
}

func (d *userDomain) GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := getUser(ctx, d.userRepo, req.ID)
	if err != nil {
		return nil, err
	}

	viewerID := xcontext.RequestUserID(ctx)
	resp := &model.GetUserResponse{User: model.ConvertUser(user, viewerID == user.ID)}

	resp.DisplayKarma, err = d.karmaDomain.DisplayKarma(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute display karma: %v", err)
		return nil, errorx.Unknown
	}

	if resp.PostCount, err = d.postRepo.CountByAuthorID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	if resp.CommentCount, err = d.commentRepo.CountByAuthorID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}

	if resp.FollowerCount, err = d.followRepo.CountFollowers(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	if resp.FollowingCount, err = d.followRepo.CountFollowing(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetListByAuthorID(ctx, user.ID, 0, profileRecentItems)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent posts: %v", err)
		return nil, errorx.Unknown
	}

	if resp.RecentPosts, err = d.viewer.viewPosts(ctx, viewerID, posts); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view recent posts: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByAuthorID(ctx, user.ID, 0, profileRecentItems)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent comments: %v", err)
		return nil, errorx.Unknown
	}

	if resp.RecentComments, err = d.viewer.viewComments(ctx, viewerID, comments); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view recent comments: %v", err)
		return nil, errorx.Unknown
	}

	if viewerID != "" && viewerID != user.ID {
		_, err := d.followRepo.Get(ctx, viewerID, user.ID)
		resp.IsFollowing = err == nil
	}

	if d.redisClient != nil {
		online, err := d.redisClient.SIsMember(ctx, common.RedisKeyOnlineUsers, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get presence of user %s: %v", user.ID, err)
		}

		resp.IsOnline = online
	}

	return resp, nil
}

func (d *userDomain) GetPosts(
	ctx context.Context, req *model.GetUserPostsRequest,
) (*model.GetUserPostsResponse, error) {
	user, err := getUser(ctx, d.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetListByAuthorID(ctx, user.ID, req.Offset, common.ClampLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.viewer.viewPosts(ctx, xcontext.RequestUserID(ctx), posts)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserPostsResponse{Posts: clientPosts}, nil
}

func (d *userDomain) GetComments(
	ctx context.Context, req *model.GetUserCommentsRequest,
) (*model.GetUserCommentsResponse, error) {
	user, err := getUser(ctx, d.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByAuthorID(ctx, user.ID, req.Offset, common.ClampLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	clientComments, err := d.viewer.viewComments(ctx, xcontext.RequestUserID(ctx), comments)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view comments: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserCommentsResponse{Comments: clientComments}, nil
}
