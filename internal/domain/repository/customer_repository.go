package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
)

// CustomerRepository owns customer accounts and their credit balances.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error

	// AdjustCredit adds delta cents to the customer's credit balance. Positive
	// credit is the amount the customer owes the shop.
	AdjustCredit(ctx context.Context, id uuid.UUID, delta int64) error
}
