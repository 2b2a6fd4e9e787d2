package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/enum"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteAction string

var (
	VoteActionCreated = enum.New(VoteAction("created"), "created")
	VoteActionUpdated = enum.New(VoteAction("updated"), "updated")
	VoteActionRemoved = enum.New(VoteAction("removed"), "removed")
	VoteActionNone    = enum.New(VoteAction("none"), "none")
)

type VoteDomain interface {
	CastVote(
		ctx context.Context, actorID string, targetType entity.VoteTargetType, targetID string, value int,
	) (VoteAction, *entity.Vote, error)
	VotePost(context.Context, *model.VotePostRequest) (*model.VotePostResponse, error)
	VoteComment(context.Context, *model.VoteCommentRequest) (*model.VoteCommentResponse, error)
}

type voteDomain struct {
	voteRepo           repository.VoteRepository
	postRepo           repository.PostRepository
	commentRepo        repository.CommentRepository
	userRepo           repository.UserRepository
	notificationDomain NotificationDomain
}

func NewVoteDomain(
	voteRepo repository.VoteRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notificationDomain NotificationDomain,
) *voteDomain {
	return &voteDomain{
		voteRepo:           voteRepo,
		postRepo:           postRepo,
		commentRepo:        commentRepo,
		userRepo:           userRepo,
		notificationDomain: notificationDomain,
	}
}

// CastVote keeps at most one live vote per user and target. Casting the same
// value twice removes the vote, a value of zero removes it too.
func (d *voteDomain) CastVote(
	ctx context.Context, actorID string, targetType entity.VoteTargetType, targetID string, value int,
) (VoteAction, *entity.Vote, error) {
	if value < -1 || value > 1 {
		return "", nil, errorx.New(errorx.BadRequest, "Vote value must be -1, 0 or 1")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	action, vote, err := d.castVote(ctx, actorID, targetType, targetID, value)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cast vote: %v", err)
		return "", nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit vote: %v", err)
		return "", nil, errorx.Unknown
	}

	return action, vote, nil
}

func (d *voteDomain) castVote(
	ctx context.Context, actorID string, targetType entity.VoteTargetType, targetID string, value int,
) (VoteAction, *entity.Vote, error) {
	existing, err := d.voteRepo.Get(ctx, actorID, targetType, targetID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("cannot get vote: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		existing = nil
	}

	switch {
	case existing != nil && (value == 0 || existing.Value == value):
		if err := d.voteRepo.Delete(ctx, existing.ID); err != nil {
			return "", nil, fmt.Errorf("cannot delete vote: %w", err)
		}

		return VoteActionRemoved, nil, nil

	case existing == nil && value == 0:
		return VoteActionNone, nil, nil

	case existing != nil:
		if err := d.voteRepo.UpdateValue(ctx, existing.ID, value); err != nil {
			return "", nil, fmt.Errorf("cannot update vote: %w", err)
		}

		existing.Value = value
		return VoteActionUpdated, existing, nil

	default:
		vote := &entity.Vote{
			ID:         uuid.NewString(),
			UserID:     actorID,
			TargetType: targetType,
			TargetID:   targetID,
			Value:      value,
		}

		// A concurrent vote of the same user on the same target turns into an
		// update of the existing row.
		if err := d.voteRepo.Upsert(ctx, vote); err != nil {
			return "", nil, fmt.Errorf("cannot create vote: %w", err)
		}

		stored, err := d.voteRepo.Get(ctx, actorID, targetType, targetID)
		if err != nil {
			return "", nil, fmt.Errorf("cannot get stored vote: %w", err)
		}

		if stored.ID != vote.ID {
			return VoteActionUpdated, stored, nil
		}

		return VoteActionCreated, stored, nil
	}
}

func (d *voteDomain) VotePost(
	ctx context.Context, req *model.VotePostRequest,
) (*model.VotePostResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
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

	requestUserID := xcontext.RequestUserID(ctx)
	action, vote, err := d.CastVote(ctx, requestUserID, entity.VoteTargetPost, post.ID, req.Value)
	if err != nil {
		return nil, err
	}

	voteCount, err := d.voteRepo.SumByTarget(ctx, entity.VoteTargetPost, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes of post: %v", err)
		return nil, errorx.Unknown
	}

	if action != VoteActionRemoved && action != VoteActionNone && requestUserID != post.AuthorID {
		verb := "upvoted"
		if req.Value < 0 {
			verb = "downvoted"
		}

		notifyQuietly(ctx, d.notificationDomain, NotifyParams{
			ActorID:     requestUserID,
			RecipientID: post.AuthorID,
			Type:        entity.NotificationVote,
			Content:     fmt.Sprintf("%s %s your post", d.actorName(ctx, requestUserID), verb),
			SourceID:    post.ID,
			SourceType:  entity.SourcePost,
		})
	}

	return &model.VotePostResponse{
		Action:    string(action),
		Vote:      convertVoteEcho(entity.VoteTargetPost, post.ID, vote),
		VoteCount: voteCount,
	}, nil
}

func (d *voteDomain) VoteComment(
	ctx context.Context, req *model.VoteCommentRequest,
) (*model.VoteCommentResponse, error) {
	if req.CommentID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment id")
	}

	comment, err := d.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)
	action, vote, err := d.CastVote(ctx, requestUserID, entity.VoteTargetComment, comment.ID, req.Value)
	if err != nil {
		return nil, err
	}

	voteCount, err := d.voteRepo.SumByTarget(ctx, entity.VoteTargetComment, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes of comment: %v", err)
		return nil, errorx.Unknown
	}

	if req.Value > 0 && requestUserID != comment.AuthorID {
		notifyQuietly(ctx, d.notificationDomain, NotifyParams{
			ActorID:     requestUserID,
			RecipientID: comment.AuthorID,
			Type:        entity.NotificationVote,
			Content:     fmt.Sprintf("%s upvoted your comment", d.actorName(ctx, requestUserID)),
			SourceID:    comment.ID,
			SourceType:  entity.SourceComment,
		})
	}

	return &model.VoteCommentResponse{
		Action:    string(action),
		Vote:      convertVoteEcho(entity.VoteTargetComment, comment.ID, vote),
		VoteCount: voteCount,
	}, nil
}

func (d *voteDomain) actorName(ctx context.Context, userID string) string {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user %s: %v", userID, err)
		return "Someone"
	}

	return user.Username
}

// convertVoteEcho echoes a zero vote when the vote was removed.
func convertVoteEcho(targetType entity.VoteTargetType, targetID string, vote *entity.Vote) model.Vote {
	if vote == nil {
		return model.Vote{TargetType: string(targetType), TargetID: targetID}
	}

	return model.ConvertVote(vote)
}
