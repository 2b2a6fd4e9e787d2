package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetList(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	Get(context.Context, *model.GetCommentRequest) (*model.GetCommentResponse, error)
	Update(context.Context, *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo        repository.CommentRepository
	postRepo           repository.PostRepository
	notificationDomain NotificationDomain
	permissionResolver *common.PermissionResolver
	viewer             contentViewer
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	mediaRepo repository.MediaRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	moderatorRepo repository.ModeratorRepository,
	subscriptionRepo repository.SubscriptionRepository,
	notificationDomain NotificationDomain,
) *commentDomain {
	return &commentDomain{
		commentRepo:        commentRepo,
		postRepo:           postRepo,
		notificationDomain: notificationDomain,
		permissionResolver: common.NewPermissionResolver(userRepo, moderatorRepo, subscriptionRepo),
		viewer:             newContentViewer(mediaRepo, voteRepo, commentRepo),
	}
}

func (d *commentDomain) getLivePost(ctx context.Context, id string) (*entity.Post, error) {
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

func (d *commentDomain) getComment(ctx context.Context, id string) (*entity.Comment, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment id")
	}

	comment, err := d.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.IsDeleted {
		return nil, errorx.New(errorx.NotFound, "Not found comment")
	}

	return comment, nil
}

func (d *commentDomain) view(ctx context.Context, comment *entity.Comment) (model.Comment, error) {
	comments, err := d.viewer.viewComments(ctx, xcontext.RequestUserID(ctx), []entity.Comment{*comment})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view comment: %v", err)
		return model.Comment{}, errorx.Unknown
	}

	return comments[0], nil
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	post, err := d.getLivePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Content:  req.Content,
		AuthorID: xcontext.RequestUserID(ctx),
		PostID:   post.ID,
	}

	if req.ParentID != "" {
		parent, err := d.getComment(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}

		if parent.PostID != post.ID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment does not belong to this post")
		}

		comment.ParentID = sql.NullString{Valid: true, String: parent.ID}
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	notifyQuietly(ctx, d.notificationDomain, NotifyParams{
		ActorID:     comment.AuthorID,
		RecipientID: post.AuthorID,
		Type:        entity.NotificationComment,
		Content:     "New comment on your post: " + common.Truncate(comment.Content, notificationPreviewRunes),
		SourceID:    post.ID,
		SourceType:  entity.SourcePost,
	})

	comment, err = d.getComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	clientComment, err := d.view(ctx, comment)
	if err != nil {
		return nil, err
	}

	return &model.CreateCommentResponse{Comment: clientComment}, nil
}

// GetList returns the top-level comments newest first, each carrying its
// replies oldest first.
func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	post, err := d.getLivePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	clientComments, err := d.viewer.viewComments(ctx, xcontext.RequestUserID(ctx), comments)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot view comments: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommentsResponse{Comments: buildCommentTree(clientComments)}, nil
}

// buildCommentTree expects comments ordered oldest first. Replies of a
// missing parent are dropped.
func buildCommentTree(comments []model.Comment) []model.Comment {
	children := map[string][]model.Comment{}
	roots := []model.Comment{}
	for _, c := range comments {
		if c.ParentID == "" {
			roots = append(roots, c)
		} else {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}

	var attach func(c model.Comment) model.Comment
	attach = func(c model.Comment) model.Comment {
		for _, child := range children[c.ID] {
			c.Replies = append(c.Replies, attach(child))
		}

		return c
	}

	result := make([]model.Comment, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		result = append(result, attach(roots[i]))
	}

	return result
}

func (d *commentDomain) Get(
	ctx context.Context, req *model.GetCommentRequest,
) (*model.GetCommentResponse, error) {
	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	clientComment, err := d.view(ctx, comment)
	if err != nil {
		return nil, err
	}

	return &model.GetCommentResponse{Comment: clientComment}, nil
}

// requireManage grants the author and moderators holding MANAGE_COMMENTS.
func (d *commentDomain) requireManage(ctx context.Context, comment *entity.Comment) error {
	if comment.AuthorID == xcontext.RequestUserID(ctx) {
		return nil
	}

	post, err := d.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return errorx.Unknown
	}

	return requireModerate(ctx, d.permissionResolver, post.SubredditID, entity.ManageComments)
}

func (d *commentDomain) Update(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManage(ctx, comment); err != nil {
		return nil, err
	}

	if err := d.commentRepo.UpdateContent(ctx, comment.ID, req.Content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Unknown
	}

	comment.Content = req.Content
	clientComment, err := d.view(ctx, comment)
	if err != nil {
		return nil, err
	}

	return &model.UpdateCommentResponse{Comment: clientComment}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManage(ctx, comment); err != nil {
		return nil, err
	}

	if err := d.commentRepo.SoftDelete(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}
