package comment

import (
	"context"
	"time"

	"socialgraph/internal/core/comment"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	// FindByPostID به ترتیب ذخیره‌سازی
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	PostID    string `json:"post_id"`
	CreatedAt string `json:"created_at"`
}

func ToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		PostID:    c.PostID.String(),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
