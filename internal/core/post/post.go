package post

import (
	"time"

	"socialgraph/internal/core/tag"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

type Post struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	User      user.User `gorm:"foreignkey:UserID"` // نویسنده پست
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// PostTag جدول واسط many-to-many بین Post و Tag با کلید مرکب
type PostTag struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	TagID     uuid.UUID `gorm:"primaryKey;type:char(36);index"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Tag       tag.Tag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	Position  int       `gorm:"not null;default:0"` // ترتیب اتصال به پست، حتی داخل یک batch
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostTag) TableName() string { return "post_tags" }
