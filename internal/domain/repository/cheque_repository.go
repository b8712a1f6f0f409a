package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

// ChequeFilter narrows cheque listings.
type ChequeFilter struct {
	Status     *enum.ChequeStatus
	CustomerID *uuid.UUID
	Page       int
	PageSize   int
}

// ChequeRepository owns the registry of deferred-payment cheques.
type ChequeRepository interface {
	Create(ctx context.Context, cheque *entity.Cheque) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cheque, error)
	List(ctx context.Context, filter ChequeFilter) ([]entity.Cheque, int64, error)

	// DuePending returns pending cheques whose due date falls on the given day.
	DuePending(ctx context.Context, day time.Time) ([]entity.Cheque, error)

	// TransitionFromPending moves a cheque to a terminal status only while it
	// is still pending. Returns false when the cheque had already settled,
	// which makes bounce reversals single-shot.
	TransitionFromPending(ctx context.Context, id uuid.UUID, to enum.ChequeStatus) (bool, error)
}
