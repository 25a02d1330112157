package database

import (
	"socialgraph/internal/core/comment"
	"socialgraph/internal/core/fanoutqueue"
	"socialgraph/internal/core/like"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/tag"
	"socialgraph/internal/core/user"

	"gorm.io/gorm"
)

// Migrate ساخت جدول‌ها در صورت نبودن (idempotent)
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&post.Post{},
		&post.PostTag{},
		&comment.Comment{},
		&like.Like{},
		&subscription.Subscription{},
		&fanoutqueue.FanoutQueue{},
	)
}
