package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// paidEpsilonCents is the tolerance for treating a transaction as fully paid.
const paidEpsilonCents = 1

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Batch").
		Preload("Payments").
		Preload("Customer").
		Preload("Supplier").
		Preload("User").
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter domainRepo.TransactionFilter) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Transaction{})
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

// AddPaid bumps the paid amount and re-derives the settled status from the
// fresh balance, within a cent of the total.
func (r *transactionRepository) AddPaid(ctx context.Context, id uuid.UUID, delta int64) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)

	if err := db.Model(&entity.Transaction{}).
		Where("id = ?", id).
		Update("paid_amount", gorm.Expr("paid_amount + ?", delta)).Error; err != nil {
		return err
	}

	var txn entity.Transaction
	if err := db.First(&txn, "id = ?", id).Error; err != nil {
		return err
	}

	status := enum.TransactionStatusPending
	if txn.PaidAmount >= txn.Total-paidEpsilonCents {
		status = enum.TransactionStatusPaid
	}
	return db.Model(&entity.Transaction{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *transactionRepository) ListPendingForCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("customer_id = ? AND kind = ? AND status = ?",
			customerID, enum.TransactionKindSale, enum.TransactionStatusPending).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

type transactionLineRepository struct {
	db *gorm.DB
}

// NewTransactionLineRepository creates a new transaction line repository
func NewTransactionLineRepository(db *gorm.DB) domainRepo.TransactionLineRepository {
	return &transactionLineRepository{db: db}
}

func (r *transactionLineRepository) CreateBatch(ctx context.Context, lines []entity.TransactionLine) error {
	if len(lines) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&lines).Error
}

func (r *transactionLineRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionLine, error) {
	var lines []entity.TransactionLine
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Find(&lines).Error
	return lines, err
}
