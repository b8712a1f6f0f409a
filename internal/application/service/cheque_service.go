package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// ChequeService manages the post-settlement lifecycle of tendered cheques.
type ChequeService struct {
	uow          repository.UnitOfWork
	chequeRepo   repository.ChequeRepository
	txnRepo      repository.TransactionRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewChequeService creates a new cheque service
func NewChequeService(
	uow repository.UnitOfWork,
	chequeRepo repository.ChequeRepository,
	txnRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *ChequeService {
	return &ChequeService{
		uow:          uow,
		chequeRepo:   chequeRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// List returns cheques matching the filter.
func (s *ChequeService) List(ctx context.Context, filter repository.ChequeFilter) ([]entity.Cheque, int64, error) {
	return s.chequeRepo.List(ctx, filter)
}

// GetByID returns one cheque.
func (s *ChequeService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cheque, error) {
	cheque, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cheque == nil {
		return nil, apperror.NewNotFoundError("Cheque")
	}
	return cheque, nil
}

// DueOn returns pending cheques due on the given day.
func (s *ChequeService) DueOn(ctx context.Context, day time.Time) ([]entity.Cheque, error) {
	return s.chequeRepo.DuePending(ctx, day)
}

// DueYesterday returns pending cheques whose due date was the previous day,
// the daily follow-up list for the shop.
func (s *ChequeService) DueYesterday(ctx context.Context) ([]entity.Cheque, error) {
	return s.chequeRepo.DuePending(ctx, time.Now().AddDate(0, 0, -1))
}

// UpdateStatus settles a pending cheque as paid or bounced. Marking paid only
// flips the status; the amount was already counted at settlement. Bouncing
// additionally reverses the tender: the transaction's paid amount drops and
// the party's debt grows, atomically with the status flip. A cheque already
// in a terminal status is left untouched.
func (s *ChequeService) UpdateStatus(ctx context.Context, id uuid.UUID, to enum.ChequeStatus) (*entity.Cheque, error) {
	if !to.Terminal() {
		return nil, apperror.NewValidationMessage("Cheques can only move to paid or bounced")
	}

	cheque, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError(err.Error())
	}
	if cheque == nil {
		return nil, apperror.NewNotFoundError("Cheque")
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		moved, err := s.chequeRepo.TransitionFromPending(ctx, id, to)
		if err != nil {
			return apperror.NewPersistenceError(err.Error())
		}
		if !moved {
			// Already settled; repeating the request must not reverse twice.
			return nil
		}
		if to != enum.ChequeStatusBounced {
			return nil
		}

		if err := s.txnRepo.AddPaid(ctx, cheque.TransactionID, -cheque.Amount); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}
		if cheque.CustomerID != nil {
			if err := s.customerRepo.AdjustCredit(ctx, *cheque.CustomerID, cheque.Amount); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
		}
		if cheque.SupplierID != nil {
			if err := s.supplierRepo.AdjustCredit(ctx, *cheque.SupplierID, cheque.Amount); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.chequeRepo.GetByID(ctx, id)
}

// BatchResult reports the outcome of one cheque in a batch update.
type BatchResult struct {
	ChequeID uuid.UUID `json:"cheque_id"`
	Error    string    `json:"error,omitempty"`
}

// BatchUpdateStatus applies the same transition to several cheques. Each
// cheque settles in its own unit of work; one failure does not block the rest.
func (s *ChequeService) BatchUpdateStatus(ctx context.Context, ids []uuid.UUID, to enum.ChequeStatus) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		result := BatchResult{ChequeID: id}
		if _, err := s.UpdateStatus(ctx, id, to); err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}
