package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type VoteRepository interface {
	Get(ctx context.Context, userID string, targetType entity.VoteTargetType, targetID string) (*entity.Vote, error)
	GetByTargetIDs(ctx context.Context, userID string, targetType entity.VoteTargetType, targetIDs []string) ([]entity.Vote, error)
	Upsert(ctx context.Context, data *entity.Vote) error
	UpdateValue(ctx context.Context, id string, value int) error
	Delete(ctx context.Context, id string) error
	SumByTarget(ctx context.Context, targetType entity.VoteTargetType, targetID string) (int64, error)
	SumByTargetIDs(ctx context.Context, targetType entity.VoteTargetType, targetIDs []string) (map[string]int64, error)
	SumOnPostsOfAuthor(ctx context.Context, authorID string) (int64, error)
	SumOnCommentsOfAuthor(ctx context.Context, authorID string) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Get(
	ctx context.Context, userID string, targetType entity.VoteTargetType, targetID string,
) (*entity.Vote, error) {
	var result entity.Vote
	err := xcontext.DB(ctx).
		Where("user_id=? AND target_type=? AND target_id=?", userID, targetType, targetID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) GetByTargetIDs(
	ctx context.Context, userID string, targetType entity.VoteTargetType, targetIDs []string,
) ([]entity.Vote, error) {
	var result []entity.Vote
	err := xcontext.DB(ctx).
		Where("user_id=? AND target_type=? AND target_id IN (?)", userID, targetType, targetIDs).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Upsert inserts the vote, or overwrites the value of the existing vote of the
// same user on the same target.
func (r *voteRepository) Upsert(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "target_type"},
				{Name: "target_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(data).Error
}

func (r *voteRepository) UpdateValue(ctx context.Context, id string, value int) error {
	return xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Where("id=?", id).
		Update("value", value).Error
}

func (r *voteRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Vote{}, "id=?", id).Error
}

func (r *voteRepository) SumByTarget(
	ctx context.Context, targetType entity.VoteTargetType, targetID string,
) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("target_type=? AND target_id=?", targetType, targetID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *voteRepository) SumByTargetIDs(
	ctx context.Context, targetType entity.VoteTargetType, targetIDs []string,
) (map[string]int64, error) {
	type row struct {
		TargetID string
		Total    int64
	}

	var rows []row
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("target_id, COALESCE(SUM(value), 0) AS total").
		Where("target_type=? AND target_id IN (?)", targetType, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int64{}
	for _, r := range rows {
		result[r.TargetID] = r.Total
	}

	return result, nil
}

// SumOnPostsOfAuthor sums every vote cast on the posts of the author, deleted
// posts included.
func (r *voteRepository) SumOnPostsOfAuthor(ctx context.Context, authorID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("COALESCE(SUM(votes.value), 0)").
		Joins("JOIN posts ON posts.id=votes.target_id").
		Where("votes.target_type=? AND posts.author_id=?", entity.VoteTargetPost, authorID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *voteRepository) SumOnCommentsOfAuthor(ctx context.Context, authorID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("COALESCE(SUM(votes.value), 0)").
		Joins("JOIN comments ON comments.id=votes.target_id").
		Where("votes.target_type=? AND comments.author_id=?", entity.VoteTargetComment, authorID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
