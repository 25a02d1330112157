package database

import (
	"context"
	"time"

	"socialgraph/internal/core/fanoutqueue"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type FanoutRepositoryDatabase struct {
	db *gorm.DB
}

func NewFanoutRepositoryDatabase(db *gorm.DB) *FanoutRepositoryDatabase {
	return &FanoutRepositoryDatabase{db: db}
}

func (repo *FanoutRepositoryDatabase) Create(ctx context.Context, fanout *fanoutqueue.FanoutQueue) (*fanoutqueue.FanoutQueue, error) {
	if err := conn(ctx, repo.db).Create(fanout).Error; err != nil {
		return nil, translate(err, "create fanout record")
	}
	return fanout, nil
}

// GetPending قدیمی‌ترین رکوردهای pending بدون claim معتبر
func (repo *FanoutRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*fanoutqueue.FanoutQueue, error) {
	var fanouts []*fanoutqueue.FanoutQueue
	if err := conn(ctx, repo.db).
		Where("status = ?", fanoutqueue.StatusPending).
		Where("claimed_until IS NULL OR claimed_until < ?", time.Now()).
		Order("created_at, id").
		Limit(limit).
		Find(&fanouts).Error; err != nil {
		return nil, translate(err, "find pending fanout records")
	}
	return fanouts, nil
}

// Claim فقط یکی از Dispatch و worker ردیف را برمی‌دارد
func (repo *FanoutRepositoryDatabase) Claim(ctx context.Context, id uuid.UUID, lease time.Duration) (bool, error) {
	now := time.Now()
	res := conn(ctx, repo.db).Model(&fanoutqueue.FanoutQueue{}).
		Where("id = ? AND status = ?", id, fanoutqueue.StatusPending).
		Where("claimed_until IS NULL OR claimed_until < ?", now).
		Update("claimed_until", now.Add(lease))
	if res.Error != nil {
		return false, translate(res.Error, "claim fanout record")
	}
	return res.RowsAffected == 1, nil
}

func (repo *FanoutRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	if err := conn(ctx, repo.db).Model(&fanoutqueue.FanoutQueue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": fanoutqueue.StatusDone, "processed_at": &now, "claimed_until": nil}).Error; err != nil {
		return translate(err, "mark fanout record done")
	}
	return nil
}

func (repo *FanoutRepositoryDatabase) Release(ctx context.Context, id uuid.UUID) error {
	if err := conn(ctx, repo.db).Model(&fanoutqueue.FanoutQueue{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"attempts":      gorm.Expr("attempts + ?", 1),
			"claimed_until": nil,
		}).Error; err != nil {
		return translate(err, "release fanout record")
	}
	return nil
}
