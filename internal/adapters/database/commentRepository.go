package database

import (
	"context"

	"socialgraph/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := conn(ctx, repo.db).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, translate(err, "create comment")
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := conn(ctx, repo.db).
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments).Error; err != nil {
		return nil, translate(err, "find comments")
	}
	return comments, nil
}
