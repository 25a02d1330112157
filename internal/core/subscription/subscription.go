package subscription

import (
	"time"

	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// Subscription یال جهت‌دار «دنبال کردن»: Follower -> Followed
type Subscription struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_subscription_edge"`
	Follower   user.User `gorm:"foreignKey:FollowerID"`
	FollowedID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_subscription_edge;index"`
	Followed   user.User `gorm:"foreignKey:FollowedID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
