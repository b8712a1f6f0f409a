package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

// StockBatchRepository owns per-batch inventory records.
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockBatch, error)

	// Issue atomically decrements the batch's current quantity and increments
	// its issued quantity, guarded by a current_quantity >= qty predicate.
	// Returns false when the guard rejected the decrement (stale reservation).
	Issue(ctx context.Context, id uuid.UUID, qty float64) (bool, error)

	// UpdateStatus transitions a batch's status; with from set, the update only
	// applies when the persisted status still matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.BatchStatus) error

	// MarkExpiredBefore flips still-active batches whose expiry date precedes
	// cutoff to expired; returns the number of batches observed expired.
	MarkExpiredBefore(ctx context.Context, productID uuid.UUID, cutoff time.Time) (int64, error)
}

// StockMovementRepository owns the append-only movement log.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListForBatch(ctx context.Context, batchID uuid.UUID) ([]entity.StockMovement, error)
	SumForBatch(ctx context.Context, batchID uuid.UUID, direction enum.MovementDirection) (float64, error)
}
