package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
)

// SupplierRepository owns supplier accounts and their credit balances.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error

	// AdjustCredit adds delta cents to the supplier's credit balance.
	AdjustCredit(ctx context.Context, id uuid.UUID, delta int64) error
}
