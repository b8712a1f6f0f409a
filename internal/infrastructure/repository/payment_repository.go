package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.PaymentRecord) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.PaymentRecord, error) {
	var payments []entity.PaymentRecord
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
