package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type chequeRepository struct {
	db *gorm.DB
}

// NewChequeRepository creates a new cheque repository
func NewChequeRepository(db *gorm.DB) domainRepo.ChequeRepository {
	return &chequeRepository{db: db}
}

func (r *chequeRepository) Create(ctx context.Context, cheque *entity.Cheque) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(cheque).Error
}

func (r *chequeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cheque, error) {
	var cheque entity.Cheque
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Customer").
		First(&cheque, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cheque, nil
}

func (r *chequeRepository) List(ctx context.Context, filter domainRepo.ChequeFilter) ([]entity.Cheque, int64, error) {
	var cheques []entity.Cheque
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Cheque{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
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

	err := query.Preload("Customer").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Order("due_date ASC").
		Find(&cheques).Error

	return cheques, total, err
}

func (r *chequeRepository) DuePending(ctx context.Context, day time.Time) ([]entity.Cheque, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var cheques []entity.Cheque
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("status = ? AND due_date >= ? AND due_date < ?", enum.ChequeStatusPending, start, end).
		Preload("Customer").
		Order("due_date ASC").
		Find(&cheques).Error
	return cheques, err
}

// TransitionFromPending settles a cheque only while it is still pending. The
// status predicate makes repeated bounce requests no-ops after the first.
func (r *chequeRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, to enum.ChequeStatus) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Cheque{}).
		Where("id = ? AND status = ?", id, enum.ChequeStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
