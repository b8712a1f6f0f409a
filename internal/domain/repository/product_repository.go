package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
)

// ProductRepository defines the catalog lookup contract consumed by the
// billing panel. Catalog management itself is an external collaborator.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, search string, limit int) ([]entity.Product, error)
}
