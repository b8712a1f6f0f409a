package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) Search(ctx context.Context, term string, limit int) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier

	query := dbFrom(ctx, r.db).WithContext(ctx)
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(company_name) LIKE LOWER(?)", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) AdjustCredit(ctx context.Context, id uuid.UUID, delta int64) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Supplier{}).
		Where("id = ?", id).
		Update("credit", gorm.Expr("credit + ?", delta)).Error
}
