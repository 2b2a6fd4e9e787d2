package repository

import (
	"context"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Comment, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
	UpdateContent(ctx context.Context, id, content string) error
	SoftDelete(ctx context.Context, id string) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Omit("Author").Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Preload("Author").Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetListByPostID returns every live comment of the post, oldest first.
func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=? AND is_deleted=?", postID, false).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) GetListByAuthorID(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("author_id=? AND is_deleted=?", authorID, false).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("author_id=? AND is_deleted=?", authorID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *commentRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	type row struct {
		PostID string
		Total  int64
	}

	var rows []row
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN (?) AND is_deleted=?", postIDs, false).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int64{}
	for _, r := range rows {
		result[r.PostID] = r.Total
	}

	return result, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		Update("content", content).Error
}

func (r *commentRepository) SoftDelete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		Update("is_deleted", true).Error
}
