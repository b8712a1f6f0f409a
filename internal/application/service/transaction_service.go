package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// TransactionService serves read access to the committed ledger.
type TransactionService struct {
	txnRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

// List returns transaction headers matching the filter.
func (s *TransactionService) List(ctx context.Context, filter repository.TransactionFilter) ([]entity.Transaction, int64, error) {
	return s.txnRepo.List(ctx, filter)
}

// GetWithDetails returns a transaction with lines, payments and parties.
func (s *TransactionService) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}
