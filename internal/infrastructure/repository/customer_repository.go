package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&customer, "mobile = ?", mobile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Search(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	var customers []entity.Customer

	query := dbFrom(ctx, r.db).WithContext(ctx)
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR mobile LIKE ?", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) AdjustCredit(ctx context.Context, id uuid.UUID, delta int64) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("credit", gorm.Expr("credit + ?", delta)).Error
}
