package tag

import (
	"time"

	"github.com/gofrs/uuid"
)

type Tag struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"type:varchar(191);not null;uniqueIndex:uniq_tag_name"` // یکتایی نام در سطح دیتابیس
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
