package fanout

import (
	"context"
	"errors"
	"time"

	"socialgraph/internal/core/fanoutqueue"

	"github.com/gofrs/uuid"
)

// ErrAlreadyClaimed رکورد done شده یا پردازشگر دیگری آن را گرفته است
var ErrAlreadyClaimed = errors.New("fanout record already claimed")

type FanoutRepository interface {
	Create(ctx context.Context, fanout *fanoutqueue.FanoutQueue) (*fanoutqueue.FanoutQueue, error)
	// GetPending رکوردهای pending که claim معتبری ندارند
	GetPending(ctx context.Context, limit int) ([]*fanoutqueue.FanoutQueue, error)
	// Claim با یک update شرطی؛ false یعنی رکورد در اختیار دیگری یا done است
	Claim(ctx context.Context, id uuid.UUID, lease time.Duration) (bool, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	// Release بعد از شکست: claim آزاد و attempts یکی زیاد می‌شود
	Release(ctx context.Context, id uuid.UUID) error
}

// EventPublisher انتشار رویداد پست به بیرون (Kafka)
type EventPublisher interface {
	Publish(ctx context.Context, msg FanoutMessage) error
}

// مدل پیام در صف
type FanoutMessage struct {
	Event     string `json:"event"`
	PostID    string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
}
