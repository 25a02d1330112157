package subscription

import (
	"context"

	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// SubscriptionRepository پورت برای یال‌های دنبال کردن
type SubscriptionRepository interface {
	// Create برای یال تکراری خطای apperr.ErrConflict برمی‌گرداند
	Create(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error)
	// Followers کاربرانی که userID را دنبال می‌کنند
	Followers(ctx context.Context, userID uuid.UUID) ([]*user.User, error)
	// Following کاربرانی که userID دنبال می‌کند
	Following(ctx context.Context, userID uuid.UUID) ([]*user.User, error)
	FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
