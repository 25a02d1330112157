package uow

import "context"

// Transactor یک واحد کار (تراکنش) برای هر عملیات؛ ctx داخل fn حامل تراکنش است
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
