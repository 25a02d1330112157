package post

import (
	"context"
	"time"

	"socialgraph/internal/core/post"
	"socialgraph/internal/core/tag"
	tagPort "socialgraph/internal/ports/tag"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	// FindByUserID به ترتیب زمان ایجاد (قدیمی‌ترین اول)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*post.Post, error)
	// FindByAuthors همراه با User پر شده، جدیدترین اول
	FindByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*post.Post, error)
	// FindByTagID جدیدترین اول
	FindByTagID(ctx context.Context, tagID uuid.UUID) ([]*post.Post, error)
	// Delete تگ‌ها، کامنت‌ها و لایک‌های پست را هم حذف می‌کند
	Delete(ctx context.Context, id uuid.UUID) error

	TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	// AttachTags ردیف تکراری (post_id, tag_id) را نادیده می‌گیرد
	AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	// Tags به ترتیب اتصال
	Tags(ctx context.Context, postID uuid.UUID) ([]*tag.Tag, error)
}

// DTOها برای UseCase
type PostDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	UserID    string            `json:"user_id"`
	Tags      []*tagPort.TagDTO `json:"tags,omitempty"`
	CreatedAt string            `json:"created_at"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID.String(),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func ToDTOs(posts []*post.Post) []*PostDTO {
	out := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDTO(p))
	}
	return out
}
