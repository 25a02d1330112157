package like

import (
	"time"

	"socialgraph/internal/core/post"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// Like هر کاربر حداکثر یک بار یک پست را لایک می‌کند
type Like struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_post"`
	User      user.User `gorm:"foreignKey:UserID"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_post;index"`
	Post      post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
