package fanoutqueueapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialgraph/internal/core/fanoutqueue"
	"socialgraph/internal/core/post"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	feedPort "socialgraph/internal/ports/feed"
	subscriptionPort "socialgraph/internal/ports/subscription"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FanoutService struct {
	FanoutRepository       fanoutPort.FanoutRepository
	SubscriptionRepository subscriptionPort.SubscriptionRepository
	FeedCache              feedPort.FeedCache        // nil یعنی کش غیرفعال
	Publisher              fanoutPort.EventPublisher // nil یعنی Kafka غیرفعال
	BatchSize              int
	Lease                  time.Duration // مدت claim هر رکورد
	Logger                 *zap.Logger
}

func NewFanoutService(
	fanoutRepo fanoutPort.FanoutRepository,
	subscriptionRepo subscriptionPort.SubscriptionRepository,
	cache feedPort.FeedCache,
	publisher fanoutPort.EventPublisher,
	batchSize int,
	logger *zap.Logger,
) *FanoutService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &FanoutService{
		FanoutRepository:       fanoutRepo,
		SubscriptionRepository: subscriptionRepo,
		FeedCache:              cache,
		Publisher:              publisher,
		BatchSize:              batchSize,
		Lease:                  30 * time.Second,
		Logger:                 logger,
	}
}

// NewRecord رکورد pending برای رویداد یک پست
func NewRecord(event string, p *post.Post) *fanoutqueue.FanoutQueue {
	return &fanoutqueue.FanoutQueue{
		ID:     uuid.Must(uuid.NewV4()),
		Event:  event,
		PostID: p.ID,
		UserID: p.UserID,
		Status: fanoutqueue.StatusPending,
	}
}

// NewSubscriptionRecord رکورد pending برای باطل کردن فید دنبال‌کننده بعد از commit
func NewSubscriptionRecord(followerID, followedID uuid.UUID) *fanoutqueue.FanoutQueue {
	return &fanoutqueue.FanoutQueue{
		ID:     uuid.Must(uuid.NewV4()),
		Event:  fanoutqueue.EventSubscriptionCreated,
		PostID: followedID,
		UserID: followerID,
		Status: fanoutqueue.StatusPending,
	}
}

// Process رکورد را claim می‌کند، کش‌ها را باطل و رویداد را منتشر می‌کند و رکورد را done می‌کند.
// اگر رکورد در اختیار دیگری باشد fanoutPort.ErrAlreadyClaimed برمی‌گردد.
func (s *FanoutService) Process(ctx context.Context, fq *fanoutqueue.FanoutQueue) error {
	if fq == nil || fq.UserID == uuid.Nil || fq.PostID == uuid.Nil {
		return fmt.Errorf("invalid fanout record: %+v", fq)
	}

	ok, err := s.FanoutRepository.Claim(ctx, fq.ID, s.Lease)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	if !ok {
		return fanoutPort.ErrAlreadyClaimed
	}

	if err := s.deliver(ctx, fq); err != nil {
		s.release(ctx, fq)
		return err
	}
	if err := s.FanoutRepository.MarkDone(ctx, fq.ID); err != nil {
		s.release(ctx, fq)
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

func (s *FanoutService) deliver(ctx context.Context, fq *fanoutqueue.FanoutQueue) error {
	if fq.Event == fanoutqueue.EventSubscriptionCreated {
		if s.FeedCache == nil {
			return nil
		}
		if err := s.FeedCache.Invalidate(ctx, fq.UserID.String()); err != nil {
			return fmt.Errorf("invalidate follower feed: %w", err)
		}
		return nil
	}

	followers, err := s.SubscriptionRepository.FollowerIDs(ctx, fq.UserID)
	if err != nil {
		return fmt.Errorf("fetch followers: %w", err)
	}

	if s.FeedCache != nil && len(followers) > 0 {
		followerIDs := make([]string, 0, len(followers))
		for _, id := range followers {
			followerIDs = append(followerIDs, id.String())
		}
		// پردازش batch برای حذف کلیدهای کش
		for i := 0; i < len(followerIDs); i += s.BatchSize {
			end := min(i+s.BatchSize, len(followerIDs))
			if err := s.FeedCache.Invalidate(ctx, followerIDs[i:end]...); err != nil {
				return fmt.Errorf("invalidate feeds %d-%d: %w", i, end, err)
			}
		}
	}

	if s.Publisher != nil {
		msg := fanoutPort.FanoutMessage{
			Event:     fq.Event,
			PostID:    fq.PostID.String(),
			AuthorID:  fq.UserID.String(),
			CreatedAt: fq.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
		if err := s.Publisher.Publish(ctx, msg); err != nil {
			return fmt.Errorf("publish %s: %w", fq.Event, err)
		}
	}

	s.Logger.Debug("fanout processed",
		zap.String("event", fq.Event),
		zap.String("postID", fq.PostID.String()),
		zap.Int("followers", len(followers)))
	return nil
}

// Dispatch بعد از commit صدا زده می‌شود؛ در صورت خطا رکورد pending می‌ماند تا worker دوباره تلاش کند
func (s *FanoutService) Dispatch(ctx context.Context, fq *fanoutqueue.FanoutQueue) {
	err := s.Process(ctx, fq)
	switch {
	case err == nil:
	case errors.Is(err, fanoutPort.ErrAlreadyClaimed):
		s.Logger.Debug("fanout record picked up by worker", zap.String("fanoutID", fq.ID.String()))
	default:
		s.Logger.Warn("⚠️ fanout dispatch failed, left pending for worker",
			zap.String("fanoutID", fq.ID.String()), zap.Error(err))
	}
}

func (s *FanoutService) release(ctx context.Context, fq *fanoutqueue.FanoutQueue) {
	if err := s.FanoutRepository.Release(ctx, fq.ID); err != nil {
		s.Logger.Warn("⚠️ could not release fanout record", zap.String("fanoutID", fq.ID.String()), zap.Error(err))
	}
}

// Retry برای worker: مثل Dispatch ولی خطا را برمی‌گرداند
func (s *FanoutService) Retry(ctx context.Context, fq *fanoutqueue.FanoutQueue) error {
	return s.Process(ctx, fq)
}
