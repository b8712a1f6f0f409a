package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// StockService exposes catalog and batch lookups for the billing panel.
// Expiry is observed lazily: listing a product's batches flips any overdue
// ones to expired before returning them.
type StockService struct {
	productRepo  repository.ProductRepository
	batchRepo    repository.StockBatchRepository
	movementRepo repository.StockMovementRepository
}

// NewStockService creates a new stock service
func NewStockService(
	productRepo repository.ProductRepository,
	batchRepo repository.StockBatchRepository,
	movementRepo repository.StockMovementRepository,
) *StockService {
	return &StockService{
		productRepo:  productRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
	}
}

// CreateProduct registers a catalog item.
func (s *StockService) CreateProduct(ctx context.Context, product *entity.Product) error {
	if product.Title == "" {
		return apperror.NewValidationMessage("Product title is required")
	}
	return s.productRepo.Create(ctx, product)
}

// SearchProducts returns catalog matches for the billing search box.
func (s *StockService) SearchProducts(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, term, limit)
}

// GetProduct returns one catalog item.
func (s *StockService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListBatches returns all batches of a product, newest intake last. Overdue
// active batches are marked expired on the way out so callers never see a
// stale active status.
func (s *StockService) ListBatches(ctx context.Context, productID uuid.UUID) ([]entity.StockBatch, error) {
	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if _, err := s.batchRepo.MarkExpiredBefore(ctx, productID, cutoff); err != nil {
		// A failed sweep degrades to stale statuses, not a failed listing.
		log.Printf("Warning: expiry sweep failed for product %s: %v", productID, err)
	}

	return s.batchRepo.ListForProduct(ctx, productID)
}

// SellableBatches returns only the batches a sale line may reference: active,
// with stock on hand.
func (s *StockService) SellableBatches(ctx context.Context, productID uuid.UUID) ([]entity.StockBatch, error) {
	batches, err := s.ListBatches(ctx, productID)
	if err != nil {
		return nil, err
	}
	sellable := batches[:0]
	for _, batch := range batches {
		if batch.Status == enum.BatchStatusActive && batch.CurrentQuantity > 0 {
			sellable = append(sellable, batch)
		}
	}
	return sellable, nil
}

// Reserve checks a requested sale quantity against live stock and clamps it
// to what the batch can currently supply. Nothing is held back; the guarded
// decrement at commit time is what finally protects the ledger.
func (s *StockService) Reserve(ctx context.Context, batchID uuid.UUID, qty float64) (*entity.StockBatch, float64, error) {
	batch, err := s.GetBatch(ctx, batchID)
	if err != nil {
		return nil, 0, err
	}
	if qty < 0 {
		qty = 0
	}
	if qty > batch.CurrentQuantity {
		qty = batch.CurrentQuantity
	}
	return batch, qty, nil
}

// MarkExpired flips an active batch to expired ahead of the lazy sweep, for
// stock the operator pulls early. A batch already expired or sold out is
// left as it is.
func (s *StockService) MarkExpired(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Stock batch")
	}
	if batch.Status == enum.BatchStatusActive {
		if err := s.batchRepo.UpdateStatus(ctx, id, enum.BatchStatusActive, enum.BatchStatusExpired); err != nil {
			return nil, err
		}
		batch.Status = enum.BatchStatusExpired
	}
	return batch, nil
}

// GetBatch returns one batch.
func (s *StockService) GetBatch(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Stock batch")
	}
	return batch, nil
}

// BatchHistory returns the movement log of a batch, oldest first.
func (s *StockService) BatchHistory(ctx context.Context, batchID uuid.UUID) ([]entity.StockMovement, error) {
	return s.movementRepo.ListForBatch(ctx, batchID)
}
