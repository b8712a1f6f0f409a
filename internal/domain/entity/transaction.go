package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is the persisted header of a settled cart: a sales invoice or a
// goods receipt (GRN), depending on Kind. Immutable after commit except for
// PaidAmount/Status, which later reconciliation events (cheque clearing,
// credit repayment) may update.
type Transaction struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Kind           enum.TransactionKind   `gorm:"not null;index" json:"kind"`
	SubTotal       int64                  `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	DiscountAmount int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total          int64                  `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	PaidAmount     int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status         enum.TransactionStatus `gorm:"default:0;index" json:"status"`
	CustomerID     *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SupplierID     *uuid.UUID             `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	UserID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	Notes          *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`

	// Relationships
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Supplier *Supplier         `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	User     User              `gorm:"foreignKey:UserID" json:"-"`
	Lines    []TransactionLine `gorm:"foreignKey:TransactionID" json:"lines,omitempty"`
	Payments []PaymentRecord   `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		DiscountAmount float64 `json:"discount_amount"`
		TaxAmount      float64 `json:"tax_amount"`
		Total          float64 `json:"total"`
		PaidAmount     float64 `json:"paid_amount"`
	}{
		Alias:          Alias(t),
		SubTotal:       float64(t.SubTotal) / 100,
		DiscountAmount: float64(t.DiscountAmount) / 100,
		TaxAmount:      float64(t.TaxAmount) / 100,
		Total:          float64(t.Total) / 100,
		PaidAmount:     float64(t.PaidAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionLine is one settled cart line: quantity of a batch at a unit
// price. Immutable after commit.
type TransactionLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	BatchID        uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	Quantity       float64   `gorm:"not null" json:"quantity"`
	UnitPrice      int64     `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	DiscountAmount int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Batch       StockBatch  `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l TransactionLine) MarshalJSON() ([]byte, error) {
	type Alias TransactionLine
	return json.Marshal(&struct {
		Alias
		UnitPrice      float64 `json:"unit_price"`
		DiscountAmount float64 `json:"discount_amount"`
		LineTotal      float64 `json:"line_total"`
	}{
		Alias:          Alias(l),
		UnitPrice:      float64(l.UnitPrice) / 100,
		DiscountAmount: float64(l.DiscountAmount) / 100,
		LineTotal:      l.Quantity * float64(l.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction line
func (l *TransactionLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionLine model
func (TransactionLine) TableName() string {
	return "transaction_lines"
}
