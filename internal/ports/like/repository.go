package like

import (
	"context"

	"socialgraph/internal/core/like"

	"github.com/gofrs/uuid"
)

type LikeRepository interface {
	// Create برای جفت تکراری (user_id, post_id) خطای apperr.ErrConflict برمی‌گرداند
	Create(ctx context.Context, like *like.Like) (*like.Like, error)
	// LikerNames نام لایک‌کننده‌ها با یک join، به ترتیب لایک
	LikerNames(ctx context.Context, postID uuid.UUID) ([]string, error)
}

type PostLikesDTO struct {
	PostID string   `json:"post_id"`
	Likes  int      `json:"likes"`
	Users  []string `json:"users"`
}
