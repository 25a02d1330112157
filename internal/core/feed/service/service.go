package feedapp

import (
	"context"

	"socialgraph/internal/core/apperr"
	userapp "socialgraph/internal/core/user/service"
	feedPort "socialgraph/internal/ports/feed"
	postPort "socialgraph/internal/ports/post"
	subscriptionPort "socialgraph/internal/ports/subscription"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FeedService فید شخصی: پست‌های کاربرانی که دنبال می‌شوند، جدیدترین اول
type FeedService struct {
	UserRepository         userPort.UserRepository
	SubscriptionRepository subscriptionPort.SubscriptionRepository
	PostRepository         postPort.PostRepository
	FeedCache              feedPort.FeedCache // nil یعنی کش غیرفعال
	Logger                 *zap.Logger
}

func NewFeedService(
	userRepo userPort.UserRepository,
	subscriptionRepo subscriptionPort.SubscriptionRepository,
	postRepo postPort.PostRepository,
	cache feedPort.FeedCache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		UserRepository:         userRepo,
		SubscriptionRepository: subscriptionRepo,
		PostRepository:         postRepo,
		FeedCache:              cache,
		Logger:                 logger,
	}
}

func (s *FeedService) GetFeed(ctx context.Context, userID string) (*feedPort.FeedDTO, error) {
	id, err := apperr.ParseID("user", userID)
	if err != nil {
		return nil, err
	}
	u, err := userapp.FindUser(ctx, s.UserRepository, id)
	if err != nil {
		return nil, err
	}

	// نسخه قبل از ساختن فید خوانده می‌شود تا Set بعد از یک Invalidate همزمان رد شود
	var gen int64
	cacheable := false
	if s.FeedCache != nil {
		items, g, ok, err := s.FeedCache.Get(ctx, u.ID.String())
		switch {
		case err != nil:
			s.Logger.Warn("⚠️ feed cache read failed, using database", zap.String("userID", userID), zap.Error(err))
		case ok:
			return &feedPort.FeedDTO{User: u.Name, Feed: items}, nil
		default:
			gen, cacheable = g, true
		}
	}

	items, err := s.compose(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.FeedCache.Set(ctx, u.ID.String(), gen, items); err != nil {
			s.Logger.Warn("⚠️ feed cache write failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return &feedPort.FeedDTO{User: u.Name, Feed: items}, nil
}

// compose ۱) شناسه‌های دنبال‌شده ۲) پست‌هایشان همراه با نام نویسنده
func (s *FeedService) compose(ctx context.Context, id uuid.UUID) ([]*feedPort.FeedItemDTO, error) {
	followedIDs, err := s.SubscriptionRepository.FollowedIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	items := []*feedPort.FeedItemDTO{}
	if len(followedIDs) == 0 {
		return items, nil
	}

	posts, err := s.PostRepository.FindByAuthors(ctx, followedIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		items = append(items, &feedPort.FeedItemDTO{
			Author:  p.User.Name,
			Title:   p.Title,
			Content: p.Content,
		})
	}
	return items, nil
}
