package database

import (
	"context"

	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepositoryDatabase پیاده‌سازی SubscriptionRepository برای دیتابیس
type SubscriptionRepositoryDatabase struct {
	db *gorm.DB
}

// NewSubscriptionRepositoryDatabase سازنده SubscriptionRepositoryDatabase
func NewSubscriptionRepositoryDatabase(db *gorm.DB) *SubscriptionRepositoryDatabase {
	return &SubscriptionRepositoryDatabase{db: db}
}

// Create یال تکراری با ایندکس uniq_subscription_edge رد می‌شود
func (repo *SubscriptionRepositoryDatabase) Create(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	if err := conn(ctx, repo.db).Omit(clause.Associations).Create(s).Error; err != nil {
		return nil, translate(err, "create subscription")
	}
	return s, nil
}

func (repo *SubscriptionRepositoryDatabase) Followers(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	var users []*user.User
	if err := conn(ctx, repo.db).
		Joins("JOIN subscriptions ON subscriptions.follower_id = users.id").
		Where("subscriptions.followed_id = ?", userID).
		Order("subscriptions.created_at, subscriptions.id").
		Find(&users).Error; err != nil {
		return nil, translate(err, "find followers")
	}
	return users, nil
}

func (repo *SubscriptionRepositoryDatabase) Following(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	var users []*user.User
	if err := conn(ctx, repo.db).
		Joins("JOIN subscriptions ON subscriptions.followed_id = users.id").
		Where("subscriptions.follower_id = ?", userID).
		Order("subscriptions.created_at, subscriptions.id").
		Find(&users).Error; err != nil {
		return nil, translate(err, "find following")
	}
	return users, nil
}

func (repo *SubscriptionRepositoryDatabase) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, repo.db).
		Model(&subscription.Subscription{}).
		Where("followed_id = ?", userID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, translate(err, "find follower ids")
	}
	return ids, nil
}

func (repo *SubscriptionRepositoryDatabase) FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, repo.db).
		Model(&subscription.Subscription{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, translate(err, "find followed ids")
	}
	return ids, nil
}
