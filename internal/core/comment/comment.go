package comment

import (
	"time"

	"socialgraph/internal/core/post"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Content   string    `gorm:"type:text;not null"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Post      post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
