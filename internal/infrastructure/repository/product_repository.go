package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("Unit").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, search string, limit int) ([]entity.Product, error) {
	var products []entity.Product

	query := dbFrom(ctx, r.db).WithContext(ctx).Preload("Unit")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR code LIKE ? OR barcode LIKE ?",
			pattern, pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("title ASC").Find(&products).Error
	return products, err
}
