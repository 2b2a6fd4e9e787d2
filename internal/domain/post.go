package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/enum"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	postKarmaAmount          = 1
	notificationPreviewRunes = 50
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo           repository.PostRepository
	mediaRepo          repository.MediaRepository
	subredditRepo      repository.SubredditRepository
	subscriptionRepo   repository.SubscriptionRepository
	moderatorRepo      repository.ModeratorRepository
	communityBanRepo   repository.CommunityBanRepository
	userRepo           repository.UserRepository
	karmaDomain        KarmaDomain
	notificationDomain NotificationDomain
	permissionResolver *common.PermissionResolver
	viewer             contentViewer
}

func NewPostDomain(
	postRepo repository.PostRepository,
	mediaRepo repository.MediaRepository,
	subredditRepo repository.SubredditRepository,
	subscriptionRepo repository.SubscriptionRepository,
	moderatorRepo repository.ModeratorRepository,
	communityBanRepo repository.CommunityBanRepository,
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	karmaDomain KarmaDomain,
	notificationDomain NotificationDomain,
) *postDomain {
	return &postDomain{
		postRepo:           postRepo,
		mediaRepo:          mediaRepo,
		subredditRepo:      subredditRepo,
		subscriptionRepo:   subscriptionRepo,
		moderatorRepo:      moderatorRepo,
		communityBanRepo:   communityBanRepo,
		userRepo:           userRepo,
		karmaDomain:        karmaDomain,
		notificationDomain: notificationDomain,
		permissionResolver: common.NewPermissionResolver(userRepo, moderatorRepo, subscriptionRepo),
		viewer:             newContentViewer(mediaRepo, voteRepo, commentRepo),
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	subreddit, err := getSubreddit(ctx, d.subredditRepo, req.SubredditID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if err := checkCommunityBan(ctx, d.communityBanRepo, subreddit.ID, userID); err != nil {
		return nil, err
	}

	canPost, err := d.permissionResolver.CanPost(ctx, userID, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check post permission: %v", err)
		return nil, errorx.Unknown
	}

	if !canPost {
		return nil, errorx.New(errorx.PermissionDenied, "You must subscribe to post in this subreddit")
	}

	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    userID,
		SubredditID: subreddit.ID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	failedMedia, err := d.attachMedia(ctx, post.ID, req.Media)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot attach media: %v", err)
		return nil, errorx.Unknown
	}

	err = d.karmaDomain.AddEvent(ctx, &entity.KarmaEvent{
		UserID:     userID,
		Amount:     postKarmaAmount,
		Reason:     "create post",
		SourceID:   post.ID,
		SourceType: entity.SourcePost,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add karma event: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.karmaDomain.Recompute(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recompute karma: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit post: %v", err)
		return nil, errorx.Unknown
	}

	clientPost, err := d.view(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	d.notifySubreddit(ctx, subreddit, &clientPost)

	return &model.CreatePostResponse{Post: clientPost, FailedMedia: failedMedia}, nil
}

// attachMedia skips the invalid items and reports them instead of failing the
// whole request.
func (d *postDomain) attachMedia(
	ctx context.Context, postID string, inputs []model.MediaInput,
) ([]model.FailedMedia, error) {
	failed := []model.FailedMedia{}
	for i, input := range inputs {
		mediaType, err := enum.ToEnum[entity.MediaType](input.Type)
		if err != nil {
			failed = append(failed, model.FailedMedia{
				Index:  i,
				URL:    input.URL,
				Reason: fmt.Sprintf("Unsupported media type %s", input.Type),
			})
			continue
		}

		if input.URL == "" {
			failed = append(failed, model.FailedMedia{Index: i, Reason: "Empty media url"})
			continue
		}

		err = d.mediaRepo.Create(ctx, &entity.Media{
			Base:   entity.Base{ID: uuid.NewString()},
			PostID: postID,
			Type:   mediaType,
			URL:    input.URL,
		})
		if err != nil {
			return nil, err
		}
	}

	return failed, nil
}

// notifySubreddit notifies every subscriber and moderator of the subreddit
// once, except the author.
func (d *postDomain) notifySubreddit(ctx context.Context, subreddit *entity.Subreddit, post *model.Post) {
	subscriptions, err := d.subscriptionRepo.GetListBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get subscribers to notify: %v", err)
		return
	}

	moderators, err := d.moderatorRepo.GetListBySubredditID(ctx, subreddit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get moderators to notify: %v", err)
		return
	}

	recipients := []string{}
	for _, s := range subscriptions {
		if !slices.Contains(recipients, s.UserID) {
			recipients = append(recipients, s.UserID)
		}
	}

	for _, m := range moderators {
		if !slices.Contains(recipients, m.UserID) {
			recipients = append(recipients, m.UserID)
		}
	}

	content := fmt.Sprintf("New post by %s in %s: %s",
		post.Author.Username, subreddit.Name, common.Truncate(post.Title, notificationPreviewRunes))

	for _, recipientID := range recipients {
		notifyQuietly(ctx, d.notificationDomain, NotifyParams{
			ActorID:     post.Author.ID,
			RecipientID: recipientID,
			Type:        entity.NotificationPost,
			Content:     content,
			SourceID:    post.ID,
			SourceType:  entity.SourcePost,
		})
	}
}

func (d *postDomain) getPost(ctx context.Context, id string) (*entity.Post, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.IsDeleted {
		return nil, errorx.New(errorx.NotFound, "Not found post")
	}

	return post, nil
}

func (d *postDomain) view(ctx context.Context, id string) (model.Post, error) {
	post, err := d.getPost(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	posts, err := d.viewer.viewPosts(ctx, xcontext.RequestUserID(ctx), []entity.Post{*post})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view post: %v", err)
		return model.Post{}, errorx.Unknown
	}

	return posts[0], nil
}

func (d *postDomain) Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.view(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetPostResponse{Post: post}, nil
}

// requireManage grants the author and moderators holding MANAGE_POSTS.
func (d *postDomain) requireManage(ctx context.Context, post *entity.Post) error {
	if post.AuthorID == xcontext.RequestUserID(ctx) {
		return nil
	}

	return requireModerate(ctx, d.permissionResolver, post.SubredditID, entity.ManagePosts)
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManage(ctx, post); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	data := structs.Map(req)
	if len(data) == 0 && len(req.DeleteMediaIDs) == 0 && len(req.Media) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if len(data) > 0 {
		if err := d.postRepo.UpdateByID(ctx, post.ID, data); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
			return nil, errorx.Unknown
		}
	}

	if len(req.DeleteMediaIDs) > 0 {
		if _, err := d.mediaRepo.DeleteByIDs(ctx, post.ID, req.DeleteMediaIDs); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete media: %v", err)
			return nil, errorx.Unknown
		}
	}

	failedMedia, err := d.attachMedia(ctx, post.ID, req.Media)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot attach media: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit post: %v", err)
		return nil, errorx.Unknown
	}

	clientPost, err := d.view(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &model.UpdatePostResponse{Post: clientPost, FailedMedia: failedMedia}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManage(ctx, post); err != nil {
		return nil, err
	}

	if err := d.postRepo.SoftDelete(ctx, post.ID, req.Reason); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}
