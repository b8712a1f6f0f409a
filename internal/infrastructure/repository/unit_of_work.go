package repository

import (
	"context"
	"sync"

	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txContextKey struct{}

// withTx stores the transaction handle in the context so repositories called
// inside a unit of work join it.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// dbFrom returns the transaction from ctx when one is in flight, otherwise the
// repository's own handle.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type gormUnitOfWork struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewUnitOfWork creates a transaction runner over the shared connection.
// Commits are serialized so at most one settlement mutates stock at a time.
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
