package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Kind       *enum.TransactionKind
	Status     *enum.TransactionStatus
	CustomerID *uuid.UUID
	SupplierID *uuid.UUID
	Page       int
	PageSize   int
}

// TransactionRepository owns committed transaction headers.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]entity.Transaction, int64, error)

	// AddPaid adjusts a transaction's paid amount by delta cents and refreshes
	// its status from the new paid/total relation.
	AddPaid(ctx context.Context, id uuid.UUID, delta int64) error

	// ListPendingForCustomer returns the customer's unpaid sales, oldest first.
	ListPendingForCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
}

// TransactionLineRepository owns the per-batch lines under a transaction.
type TransactionLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.TransactionLine) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionLine, error)
}
