package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

// searchLimit caps typeahead results for the billing search boxes.
const searchLimit = 5

// CustomerService manages customer accounts and credit repayments.
type CustomerService struct {
	uow          repository.UnitOfWork
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	uow repository.UnitOfWork,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	paymentRepo repository.PaymentRepository,
) *CustomerService {
	return &CustomerService{
		uow:          uow,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		paymentRepo:  paymentRepo,
	}
}

// Create registers a customer. Mobile numbers are unique across the book.
func (s *CustomerService) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.Name == "" {
		return apperror.NewValidationMessage("Customer name is required")
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewDuplicatePartyError("A customer with this mobile number already exists")
		}
		return apperror.NewPersistenceError(err.Error())
	}
	return nil
}

// GetByID returns one customer.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// Search returns typeahead matches by name or mobile.
func (s *CustomerService) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	return s.customerRepo.Search(ctx, term, searchLimit)
}

// RepayCredit settles part or all of a customer's debt. The payment walks the
// customer's unpaid sales oldest first, marking each paid as far as the money
// reaches, and shrinks the credit balance by the full amount. Everything
// lands in one unit of work.
func (s *CustomerService) RepayCredit(ctx context.Context, customerID uuid.UUID, amount int64) (*entity.Customer, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationMessage("Repayment amount must be positive")
	}

	customer, err := s.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if amount > customer.Credit {
		return nil, apperror.NewValidationMessage("Repayment exceeds the outstanding balance")
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		pending, err := s.txnRepo.ListPendingForCustomer(ctx, customerID)
		if err != nil {
			return apperror.NewPersistenceError(err.Error())
		}

		remaining := amount
		for _, txn := range pending {
			if remaining <= 0 {
				break
			}
			due := txn.Total - txn.PaidAmount
			if due <= 0 {
				continue
			}
			pay := due
			if pay > remaining {
				pay = remaining
			}

			if err := s.txnRepo.AddPaid(ctx, txn.ID, pay); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
			payment := &entity.PaymentRecord{
				TransactionID: txn.ID,
				Amount:        pay,
				Instrument:    enum.InstrumentCash,
			}
			if err := s.paymentRepo.Create(ctx, payment); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
			remaining -= pay
		}

		return s.customerRepo.AdjustCredit(ctx, customerID, -amount)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, customerID)
}
