package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// SupplierService manages supplier accounts and what the shop owes them.
type SupplierService struct {
	uow          repository.UnitOfWork
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(uow repository.UnitOfWork, supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{uow: uow, supplierRepo: supplierRepo}
}

// Create registers a supplier.
func (s *SupplierService) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.CompanyName == "" {
		return apperror.NewValidationMessage("Supplier company name is required")
	}
	return s.supplierRepo.Create(ctx, supplier)
}

// GetByID returns one supplier.
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// Search returns typeahead matches by name or company.
func (s *SupplierService) Search(ctx context.Context, term string) ([]entity.Supplier, error) {
	return s.supplierRepo.Search(ctx, term, searchLimit)
}

// RepayCredit records paying down what the shop owes a supplier.
func (s *SupplierService) RepayCredit(ctx context.Context, supplierID uuid.UUID, amount int64) (*entity.Supplier, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationMessage("Repayment amount must be positive")
	}

	supplier, err := s.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if amount > supplier.Credit {
		return nil, apperror.NewValidationMessage("Repayment exceeds the outstanding balance")
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		return s.supplierRepo.AdjustCredit(ctx, supplierID, -amount)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, supplierID)
}
