package workers

import (
	"context"
	"errors"
	"time"

	"socialgraph/internal/core/fanoutqueue"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"

	"go.uber.org/zap"
)

// FanoutProcessor پردازش یک رکورد outbox (FanoutService.Retry)
type FanoutProcessor interface {
	Retry(ctx context.Context, fq *fanoutqueue.FanoutQueue) error
}

// FanoutWorker رکوردهای pending را که dispatch همزمان‌شان شکست خورده دوباره پردازش می‌کند
type FanoutWorker struct {
	FanoutRepo fanoutPort.FanoutRepository
	Processor  FanoutProcessor
	BatchSize  int // تعداد رکوردهای pending در هر دور
	Interval   time.Duration
	Logger     *zap.Logger
}

func NewFanoutWorker(
	fanoutRepo fanoutPort.FanoutRepository,
	processor FanoutProcessor,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *FanoutWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &FanoutWorker{
		FanoutRepo: fanoutRepo,
		Processor:  processor,
		BatchSize:  batchSize,
		Interval:   interval,
		Logger:     logger,
	}
}

// Run تا لغو ctx هر Interval یک بار صف را بررسی می‌کند
func (w *FanoutWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 FanoutWorker started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Fanout worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce یک دور پردازش؛ تعداد رکوردهای موفق را برمی‌گرداند
func (w *FanoutWorker) RunOnce(ctx context.Context) int {
	pending, err := w.FanoutRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		w.Logger.Error("❌ Error fetching pending fanout records", zap.Error(err))
		return 0
	}

	done := 0
	for _, fq := range pending {
		if ctx.Err() != nil {
			break
		}
		err := w.Processor.Retry(ctx, fq)
		if errors.Is(err, fanoutPort.ErrAlreadyClaimed) {
			// Dispatch همزمان آن را برداشته است
			continue
		}
		if err != nil {
			w.Logger.Warn("⚠️ fanout retry failed",
				zap.String("ID", fq.ID.String()),
				zap.Int("attempts", fq.Attempts+1),
				zap.Error(err))
			continue
		}
		done++
	}

	if done > 0 {
		w.Logger.Info("✅ Fanout records processed", zap.Int("count", done))
	}
	return done
}
