package database

import (
	"context"
	"errors"
	"fmt"

	"socialgraph/internal/core/apperr"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor پیاده‌سازی uow.Transactor روی gorm
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction fn را در یک تراکنش اجرا می‌کند؛ تراکنش تو در تو به تراکنش بیرونی می‌پیوندد
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn تراکنش جاری ctx یا اتصال اصلی را برمی‌گرداند
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translate خطاهای gorm را به نوع‌های apperr نگاشت می‌کند
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, apperr.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s references a missing row: %w", what, apperr.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
