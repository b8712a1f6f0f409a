package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/workspace"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
	"github.com/hardwarepos/pos-api/pkg/receipt"
	"gorm.io/gorm"
)

// balanceEpsilonCents is the tolerance under which a shortfall still counts
// as fully paid.
const balanceEpsilonCents = 1

// SettlementService turns a reviewed cart into a committed transaction. All
// writes of one commit run inside a single unit of work; the cart itself is
// only marked committed after the storage transaction lands.
type SettlementService struct {
	uow          repository.UnitOfWork
	txnRepo      repository.TransactionRepository
	lineRepo     repository.TransactionLineRepository
	paymentRepo  repository.PaymentRepository
	chequeRepo   repository.ChequeRepository
	batchRepo    repository.StockBatchRepository
	movementRepo repository.StockMovementRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	renderer     receipt.Renderer
	taxPercent   float64
	shopName     string
	shopPhone    string
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	uow repository.UnitOfWork,
	txnRepo repository.TransactionRepository,
	lineRepo repository.TransactionLineRepository,
	paymentRepo repository.PaymentRepository,
	chequeRepo repository.ChequeRepository,
	batchRepo repository.StockBatchRepository,
	movementRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	renderer receipt.Renderer,
	taxPercent float64,
	shopName, shopPhone string,
) *SettlementService {
	return &SettlementService{
		uow:          uow,
		txnRepo:      txnRepo,
		lineRepo:     lineRepo,
		paymentRepo:  paymentRepo,
		chequeRepo:   chequeRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		renderer:     renderer,
		taxPercent:   taxPercent,
		shopName:     shopName,
		shopPhone:    shopPhone,
	}
}

// NewCustomerInput registers a customer inline during settlement.
type NewCustomerInput struct {
	Name   string
	Mobile *string
	City   *string
}

// TenderInput is the money offered against the cart total, in cents per
// instrument. Instruments with zero amount are skipped.
type TenderInput struct {
	Cash          int64
	Card          int64
	CardReference *string
	Bank          int64
	BankReference *string
	Cheque        int64
	ChequeNumber  string
	ChequeDueDate *time.Time
}

func (t *TenderInput) total() int64 {
	return t.Cash + t.Card + t.Bank + t.Cheque
}

// CommitInput carries everything a settlement needs besides the cart lines.
// Discount is the cashier-entered whole-bill discount in cents, on top of any
// per-line below-list markdowns already reflected in the line prices.
type CommitInput struct {
	Cart        *workspace.Cart
	UserID      uuid.UUID
	CustomerID  *uuid.UUID
	NewCustomer *NewCustomerInput
	SupplierID  *uuid.UUID
	Discount    int64
	Tender      TenderInput
	Notes       *string
}

// Commit settles a reviewed cart: stock moves, the transaction header, lines,
// payments, an optional cheque and any credit adjustment land atomically. On
// failure the cart keeps its lines and flips to failed so the operator can
// reopen and retry.
func (s *SettlementService) Commit(ctx context.Context, input *CommitInput) (*entity.Transaction, error) {
	cart := input.Cart
	kind := cart.Kind()
	lines := cart.Lines()

	// Tax applies to the discounted amount, sales only.
	subTotal := cart.SubTotal()
	discount := input.Discount
	var tax int64
	if kind == enum.TransactionKindSale {
		tax = int64(math.Round(float64(subTotal-discount) * s.taxPercent / 100))
	}
	total := subTotal - discount + tax
	paid := input.Tender.total()
	balance := paid - total

	if err := s.validate(input, kind, balance); err != nil {
		return nil, err
	}

	if err := cart.BeginCommit(); err != nil {
		return nil, apperror.NewValidationMessage(err.Error())
	}

	var txn *entity.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		customerID, supplierID, err := s.resolveParty(ctx, input, kind)
		if err != nil {
			return err
		}

		status := enum.TransactionStatusPending
		if paid >= total-balanceEpsilonCents {
			status = enum.TransactionStatusPaid
		}
		txn = &entity.Transaction{
			Kind:           kind,
			SubTotal:       subTotal,
			DiscountAmount: discount,
			TaxAmount:      tax,
			Total:          total,
			PaidAmount:     paid,
			Status:         status,
			CustomerID:     customerID,
			SupplierID:     supplierID,
			UserID:         input.UserID,
			Notes:          input.Notes,
		}
		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}

		if kind == enum.TransactionKindSale {
			if err := s.commitSaleLines(ctx, txn, lines); err != nil {
				return err
			}
		} else {
			if err := s.commitPurchaseLines(ctx, txn, lines); err != nil {
				return err
			}
		}

		if err := s.recordPayments(ctx, txn, &input.Tender); err != nil {
			return err
		}

		if input.Tender.Cheque > 0 {
			cheque := &entity.Cheque{
				Number:        input.Tender.ChequeNumber,
				DueDate:       *input.Tender.ChequeDueDate,
				Amount:        input.Tender.Cheque,
				CustomerID:    customerID,
				SupplierID:    supplierID,
				TransactionID: txn.ID,
				Status:        enum.ChequeStatusPending,
			}
			if err := s.chequeRepo.Create(ctx, cheque); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
		}

		if balance < -balanceEpsilonCents {
			owed := -balance
			if kind == enum.TransactionKindSale && customerID != nil {
				if err := s.customerRepo.AdjustCredit(ctx, *customerID, owed); err != nil {
					return apperror.NewPersistenceError(err.Error())
				}
			}
			if kind == enum.TransactionKindPurchase && supplierID != nil {
				if err := s.supplierRepo.AdjustCredit(ctx, *supplierID, owed); err != nil {
					return apperror.NewPersistenceError(err.Error())
				}
			}
		}
		return nil
	})
	if err != nil {
		if markErr := cart.MarkFailed(); markErr != nil {
			log.Printf("Warning: failed to mark cart failed: %v", markErr)
		}
		return nil, err
	}

	if markErr := cart.MarkCommitted(); markErr != nil {
		log.Printf("Warning: failed to mark cart committed: %v", markErr)
	}

	// Rendering happens outside the unit of work. A failed receipt never
	// unwinds a settled transaction.
	if renderErr := s.renderReceipt(ctx, txn, lines, balance); renderErr != nil {
		log.Printf("Warning: receipt render failed for transaction %s: %v", txn.ID, renderErr)
	}

	return txn, nil
}

func (s *SettlementService) validate(input *CommitInput, kind enum.TransactionKind, balance int64) error {
	if input.Discount < 0 {
		return apperror.NewValidationMessage("Discount cannot be negative")
	}
	if input.Discount > input.Cart.SubTotal() {
		return apperror.NewValidationMessage("Discount cannot exceed the bill subtotal")
	}

	if input.Tender.Cheque > 0 {
		if input.Tender.ChequeNumber == "" {
			return apperror.NewValidationMessage("Cheque number is required when tendering a cheque")
		}
		if input.Tender.ChequeDueDate == nil {
			return apperror.NewValidationMessage("Cheque due date is required when tendering a cheque")
		}
	}

	if balance < -balanceEpsilonCents {
		switch kind {
		case enum.TransactionKindSale:
			if input.CustomerID == nil && input.NewCustomer == nil {
				return apperror.NewValidationMessage("A customer account is required for a credit sale")
			}
			if input.NewCustomer != nil && (input.NewCustomer.Mobile == nil || *input.NewCustomer.Mobile == "") {
				return apperror.NewValidationMessage("Mobile number is required to register a customer with an outstanding balance")
			}
		case enum.TransactionKindPurchase:
			if input.SupplierID == nil {
				return apperror.NewValidationMessage("A supplier account is required for an unpaid goods receipt")
			}
		}
	}

	if kind == enum.TransactionKindPurchase && input.SupplierID == nil {
		return apperror.NewValidationMessage("A supplier is required for a goods receipt")
	}
	return nil
}

func (s *SettlementService) resolveParty(ctx context.Context, input *CommitInput, kind enum.TransactionKind) (*uuid.UUID, *uuid.UUID, error) {
	if kind == enum.TransactionKindPurchase {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, nil, apperror.NewPersistenceError(err.Error())
		}
		if supplier == nil {
			return nil, nil, apperror.NewNotFoundError("Supplier")
		}
		return nil, input.SupplierID, nil
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, nil, apperror.NewPersistenceError(err.Error())
		}
		if customer == nil {
			return nil, nil, apperror.NewNotFoundError("Customer")
		}
		return input.CustomerID, nil, nil
	}

	if input.NewCustomer != nil {
		customer := &entity.Customer{
			Name:   input.NewCustomer.Name,
			Mobile: input.NewCustomer.Mobile,
			City:   input.NewCustomer.City,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, nil, apperror.NewDuplicatePartyError("A customer with this mobile number already exists")
			}
			return nil, nil, apperror.NewPersistenceError(err.Error())
		}
		return &customer.ID, nil, nil
	}

	// Anonymous cash sale.
	return nil, nil, nil
}

// commitSaleLines re-validates each reservation against live stock. The cart
// clamp used a read taken earlier; the guarded decrement here is what
// actually protects the ledger.
func (s *SettlementService) commitSaleLines(ctx context.Context, txn *entity.Transaction, lines []workspace.Line) error {
	txnLines := make([]entity.TransactionLine, 0, len(lines))
	for _, line := range lines {
		ok, err := s.batchRepo.Issue(ctx, line.BatchID, line.Quantity)
		if err != nil {
			return apperror.NewPersistenceError(err.Error())
		}
		if !ok {
			return apperror.NewInsufficientStockError(
				fmt.Sprintf("Not enough stock of %s (batch %s) for %.2f", line.Title, line.BatchNumber, line.Quantity))
		}

		batch, err := s.batchRepo.GetByID(ctx, line.BatchID)
		if err != nil {
			return apperror.NewPersistenceError(err.Error())
		}
		if batch != nil && batch.CurrentQuantity <= 0 {
			if err := s.batchRepo.UpdateStatus(ctx, line.BatchID, enum.BatchStatusActive, enum.BatchStatusOut); err != nil {
				return apperror.NewPersistenceError(err.Error())
			}
		}

		movement := &entity.StockMovement{
			BatchID:       line.BatchID,
			Direction:     enum.MovementOut,
			Quantity:      line.Quantity,
			TransactionID: txn.ID,
		}
		if err := s.movementRepo.Create(ctx, movement); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}

		txnLines = append(txnLines, entity.TransactionLine{
			TransactionID:  txn.ID,
			BatchID:        line.BatchID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			DiscountAmount: line.DiscountTotal(),
		})
	}
	if err := s.lineRepo.CreateBatch(ctx, txnLines); err != nil {
		return apperror.NewPersistenceError(err.Error())
	}
	txn.Lines = txnLines
	return nil
}

// commitPurchaseLines creates one fresh batch per received line plus its
// inbound movement, all inside the same unit of work as the header.
func (s *SettlementService) commitPurchaseLines(ctx context.Context, txn *entity.Transaction, lines []workspace.Line) error {
	txnLines := make([]entity.TransactionLine, 0, len(lines))
	for _, line := range lines {
		if line.UnitPrice <= 0 || line.SellingPrice <= 0 || line.MinSellingPrice <= 0 {
			return apperror.NewValidationMessage(
				fmt.Sprintf("Pricing for %s must be positive", line.Title))
		}
		batch := &entity.StockBatch{
			ProductID:       line.ProductID,
			BatchNumber:     line.BatchNumber,
			QuantityIn:      line.Quantity,
			CurrentQuantity: line.Quantity,
			BuyingPrice:     line.UnitPrice,
			MinSellingPrice: line.MinSellingPrice,
			SellingPrice:    line.SellingPrice,
			ExpiryDate:      line.ExpiryDate,
			Status:          enum.BatchStatusActive,
		}
		if err := s.batchRepo.Create(ctx, batch); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}

		movement := &entity.StockMovement{
			BatchID:       batch.ID,
			Direction:     enum.MovementIn,
			Quantity:      line.Quantity,
			TransactionID: txn.ID,
		}
		if err := s.movementRepo.Create(ctx, movement); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}

		txnLines = append(txnLines, entity.TransactionLine{
			TransactionID: txn.ID,
			BatchID:       batch.ID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		})
	}
	if err := s.lineRepo.CreateBatch(ctx, txnLines); err != nil {
		return apperror.NewPersistenceError(err.Error())
	}
	txn.Lines = txnLines
	return nil
}

func (s *SettlementService) recordPayments(ctx context.Context, txn *entity.Transaction, tender *TenderInput) error {
	payments := []entity.PaymentRecord{}
	if tender.Cash > 0 {
		payments = append(payments, entity.PaymentRecord{
			TransactionID: txn.ID, Amount: tender.Cash, Instrument: enum.InstrumentCash,
		})
	}
	if tender.Card > 0 {
		payments = append(payments, entity.PaymentRecord{
			TransactionID: txn.ID, Amount: tender.Card, Instrument: enum.InstrumentCard,
			CardTransactionID: tender.CardReference,
		})
	}
	if tender.Bank > 0 {
		payments = append(payments, entity.PaymentRecord{
			TransactionID: txn.ID, Amount: tender.Bank, Instrument: enum.InstrumentBank,
			Reference: tender.BankReference,
		})
	}
	if tender.Cheque > 0 {
		number := tender.ChequeNumber
		payments = append(payments, entity.PaymentRecord{
			TransactionID: txn.ID, Amount: tender.Cheque, Instrument: enum.InstrumentCheque,
			ChequeNumber: &number,
		})
	}
	for i := range payments {
		if err := s.paymentRepo.Create(ctx, &payments[i]); err != nil {
			return apperror.NewPersistenceError(err.Error())
		}
	}
	txn.Payments = payments
	return nil
}

func (s *SettlementService) renderReceipt(ctx context.Context, txn *entity.Transaction, lines []workspace.Line, balance int64) error {
	partyName := ""
	if txn.CustomerID != nil {
		if customer, err := s.customerRepo.GetByID(ctx, *txn.CustomerID); err == nil && customer != nil {
			partyName = customer.Name
		}
	}
	if txn.SupplierID != nil {
		if supplier, err := s.supplierRepo.GetByID(ctx, *txn.SupplierID); err == nil && supplier != nil {
			partyName = supplier.Name
		}
	}

	r := &receipt.Receipt{
		ShopName:   s.shopName,
		ShopPhone:  s.shopPhone,
		Number:     txn.ID.String()[:8],
		IssuedAt:   time.Now(),
		CashierID:  txn.UserID.String(),
		PartyName:  partyName,
		SubTotal:   txn.SubTotal,
		Discount:   txn.DiscountAmount,
		Tax:        txn.TaxAmount,
		Total:      txn.Total,
		Paid:       txn.PaidAmount,
		Balance:    balance,
		IsPurchase: txn.Kind == enum.TransactionKindPurchase,
	}
	for _, line := range lines {
		r.Lines = append(r.Lines, receipt.Line{
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		})
	}
	return s.renderer.Render(r)
}
