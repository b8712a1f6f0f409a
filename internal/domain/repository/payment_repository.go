package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
)

// PaymentRepository owns tender records attached to transactions.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.PaymentRecord) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.PaymentRecord, error)
}
