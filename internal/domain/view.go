package domain

import (
	"context"
	"fmt"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
)

// contentViewer decorates posts and comments with their media, vote counts,
// comment counts and the vote of the viewer.
type contentViewer struct {
	mediaRepo   repository.MediaRepository
	voteRepo    repository.VoteRepository
	commentRepo repository.CommentRepository
}

func newContentViewer(
	mediaRepo repository.MediaRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
) contentViewer {
	return contentViewer{mediaRepo: mediaRepo, voteRepo: voteRepo, commentRepo: commentRepo}
}

func (v contentViewer) viewPosts(ctx context.Context, viewerID string, posts []entity.Post) ([]model.Post, error) {
	result := []model.Post{}
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := []string{}
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	media, err := v.mediaRepo.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("cannot get media: %w", err)
	}

	mediaMap := map[string][]model.Media{}
	for i := range media {
		mediaMap[media[i].PostID] = append(mediaMap[media[i].PostID], model.ConvertMedia(&media[i]))
	}

	voteCounts, err := v.voteRepo.SumByTargetIDs(ctx, entity.VoteTargetPost, postIDs)
	if err != nil {
		return nil, fmt.Errorf("cannot sum votes: %w", err)
	}

	commentCounts, err := v.commentRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("cannot count comments: %w", err)
	}

	userVotes, err := v.userVotes(ctx, viewerID, entity.VoteTargetPost, postIDs)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		post := model.ConvertPost(&posts[i], mediaMap[posts[i].ID])
		post.VoteCount = voteCounts[posts[i].ID]
		post.CommentCount = commentCounts[posts[i].ID]
		post.UserVote = userVotes[posts[i].ID]
		result = append(result, post)
	}

	return result, nil
}

func (v contentViewer) viewComments(
	ctx context.Context, viewerID string, comments []entity.Comment,
) ([]model.Comment, error) {
	result := []model.Comment{}
	if len(comments) == 0 {
		return result, nil
	}

	commentIDs := []string{}
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}

	voteCounts, err := v.voteRepo.SumByTargetIDs(ctx, entity.VoteTargetComment, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("cannot sum votes: %w", err)
	}

	userVotes, err := v.userVotes(ctx, viewerID, entity.VoteTargetComment, commentIDs)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		comment := model.ConvertComment(&comments[i])
		comment.VoteCount = voteCounts[comments[i].ID]
		comment.UserVote = userVotes[comments[i].ID]
		result = append(result, comment)
	}

	return result, nil
}

func (v contentViewer) userVotes(
	ctx context.Context, viewerID string, targetType entity.VoteTargetType, targetIDs []string,
) (map[string]int, error) {
	result := map[string]int{}
	if viewerID == "" {
		return result, nil
	}

	votes, err := v.voteRepo.GetByTargetIDs(ctx, viewerID, targetType, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("cannot get votes of viewer: %w", err)
	}

	for _, vote := range votes {
		result[vote.TargetID] = vote.Value
	}

	return result, nil
}
