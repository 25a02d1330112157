package subscriptionapp

import (
	"context"
	"fmt"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/fanoutqueue"
	fanoutqueueapp "socialgraph/internal/core/fanoutqueue/service"
	subscriptionEntity "socialgraph/internal/core/subscription"
	userEntity "socialgraph/internal/core/user"
	userapp "socialgraph/internal/core/user/service"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	feedPort "socialgraph/internal/ports/feed"
	subscriptionPort "socialgraph/internal/ports/subscription"
	"socialgraph/internal/ports/uow"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type SubscriptionService struct {
	SubscriptionRepository subscriptionPort.SubscriptionRepository
	UserRepository         userPort.UserRepository
	FanoutRepository       fanoutPort.FanoutRepository
	Fanout                 *fanoutqueueapp.FanoutService
	FeedCache              feedPort.FeedCache // nil یعنی کش غیرفعال
	Tx                     uow.Transactor
	Logger                 *zap.Logger
}

func NewSubscriptionService(
	subscriptionRepo subscriptionPort.SubscriptionRepository,
	userRepo userPort.UserRepository,
	fanoutRepo fanoutPort.FanoutRepository,
	fanout *fanoutqueueapp.FanoutService,
	cache feedPort.FeedCache,
	tx uow.Transactor,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		SubscriptionRepository: subscriptionRepo,
		UserRepository:         userRepo,
		FanoutRepository:       fanoutRepo,
		Fanout:                 fanout,
		FeedCache:              cache,
		Tx:                     tx,
		Logger:                 logger,
	}
}

// Follow یال جهت‌دار userID -> targetID؛ دنبال کردن خود همیشه InvalidArgument است
func (s *SubscriptionService) Follow(ctx context.Context, userID, targetID string) (string, error) {
	if userID == targetID {
		s.Logger.Warn("⚠️ Cannot follow yourself", zap.String("userID", userID))
		return "", apperr.InvalidArgument("Cannot follow yourself")
	}
	followerID, err := apperr.ParseID("user", userID)
	if err != nil {
		return "", err
	}
	followedID, err := apperr.ParseID("target user", targetID)
	if err != nil {
		return "", err
	}
	if followerID == followedID {
		return "", apperr.InvalidArgument("Cannot follow yourself")
	}

	var record *fanoutqueue.FanoutQueue
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := userapp.FindUser(ctx, s.UserRepository, followerID); err != nil {
			return err
		}
		if _, err := userapp.FindUser(ctx, s.UserRepository, followedID); err != nil {
			return err
		}

		_, err := s.SubscriptionRepository.Create(ctx, &subscriptionEntity.Subscription{
			ID:         uuid.Must(uuid.NewV4()),
			FollowerID: followerID,
			FollowedID: followedID,
		})
		switch apperr.KindOf(err) {
		case apperr.ErrConflict:
			return apperr.Conflict("Already following this user")
		case apperr.ErrNotFound:
			return apperr.NotFound("User not found")
		}
		if err != nil {
			return err
		}

		record, err = s.FanoutRepository.Create(ctx, fanoutqueueapp.NewSubscriptionRecord(followerID, followedID))
		if err != nil {
			return err
		}

		// فید کش‌شده‌ی دنبال‌کننده دیگر معتبر نیست؛ اگر حذف نشود follow هم ثبت نمی‌شود
		if s.FeedCache != nil {
			if err := s.FeedCache.Invalidate(ctx, followerID.String()); err != nil {
				return fmt.Errorf("invalidate feed cache: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// دوباره بعد از commit، برای خواندنی که بین حذف کلید و commit کش را پر کرده باشد
	s.Fanout.Dispatch(ctx, record)

	s.Logger.Info("✅ User followed", zap.String("followerID", userID), zap.String("followedID", targetID))
	return fmt.Sprintf("User %s now follows user %s", userID, targetID), nil
}

// GetFollowers کاربرانی که userID را دنبال می‌کنند
func (s *SubscriptionService) GetFollowers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.SubscriptionRepository.Followers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return toDTOs(users), nil
}

// GetFollowing کاربرانی که userID دنبال می‌کند
func (s *SubscriptionService) GetFollowing(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.SubscriptionRepository.Following(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return toDTOs(users), nil
}

func (s *SubscriptionService) findUser(ctx context.Context, rawID string) (*userEntity.User, error) {
	id, err := apperr.ParseID("user", rawID)
	if err != nil {
		return nil, err
	}
	return userapp.FindUser(ctx, s.UserRepository, id)
}

func toDTOs(users []*userEntity.User) []*userPort.UserDTO {
	// اگر slice خالی یا nil بود، مقداردهی به یک آرایه خالی
	out := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userPort.ToDTO(u))
	}
	return out
}
