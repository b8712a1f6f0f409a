package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockBatchRepository struct {
	db *gorm.DB
}

// NewStockBatchRepository creates a new stock batch repository
func NewStockBatchRepository(db *gorm.DB) domainRepo.StockBatchRepository {
	return &stockBatchRepository{db: db}
}

func (r *stockBatchRepository) Create(ctx context.Context, batch *entity.StockBatch) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(batch).Error
}

func (r *stockBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	var batch entity.StockBatch
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *stockBatchRepository) ListForProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockBatch, error) {
	var batches []entity.StockBatch
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&batches).Error
	return batches, err
}

// Issue decrements on-hand stock with a quantity guard in the WHERE clause, so
// a reservation made against a stale read fails here instead of driving the
// batch negative.
func (r *stockBatchRepository) Issue(ctx context.Context, id uuid.UUID, qty float64) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockBatch{}).
		Where("id = ? AND current_quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"current_quantity": gorm.Expr("current_quantity - ?", qty),
			"quantity_out":     gorm.Expr("quantity_out + ?", qty),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *stockBatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.BatchStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockBatch{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to).Error
}

func (r *stockBatchRepository) MarkExpiredBefore(ctx context.Context, productID uuid.UUID, cutoff time.Time) (int64, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockBatch{}).
		Where("product_id = ? AND status = ? AND expiry_date IS NOT NULL AND expiry_date < ?",
			productID, enum.BatchStatusActive, cutoff).
		Update("status", enum.BatchStatusExpired)
	return result.RowsAffected, result.Error
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(movement).Error
}

func (r *stockMovementRepository) ListForBatch(ctx context.Context, batchID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepository) SumForBatch(ctx context.Context, batchID uuid.UUID, direction enum.MovementDirection) (float64, error) {
	var total float64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockMovement{}).
		Where("batch_id = ? AND direction = ?", batchID, direction).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
