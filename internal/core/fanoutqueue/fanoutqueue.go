package fanoutqueue

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"

	EventPostCreated = "post.created"
	EventPostDeleted = "post.deleted"
	// EventSubscriptionCreated فقط فید کش‌شده‌ی UserID (دنبال‌کننده) را باطل می‌کند
	EventSubscriptionCreated = "subscription.created"
)

// FanoutQueue رکورد outbox که همراه با نوشتن پست در همان تراکنش ثبت می‌شود
type FanoutQueue struct {
	ID     uuid.UUID `gorm:"primary_key;type:char(36)"`
	Event  string    `gorm:"type:varchar(32);not null"`
	PostID uuid.UUID `gorm:"type:char(36);not null"` // برای subscription.created: کاربر دنبال‌شده
	UserID uuid.UUID `gorm:"type:char(36);not null"` // نویسنده پست یا دنبال‌کننده
	Status string    `gorm:"type:varchar(20);not null;index"`

	Attempts int `gorm:"not null;default:0"`
	// ClaimedUntil تا این زمان رکورد در اختیار یک پردازشگر است (Dispatch یا worker)
	ClaimedUntil *time.Time

	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (FanoutQueue) TableName() string { return "fanout_queue" }
