package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PaymentRecord represents one tendered amount against a transaction, one row
// per non-zero instrument. Immutable after commit.
type PaymentRecord struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Amount            int64                  `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Instrument        enum.PaymentInstrument `gorm:"not null" json:"instrument"`
	ChequeNumber      *string                `gorm:"size:25" json:"cheque_number,omitempty"`
	CardTransactionID *string                `gorm:"size:25" json:"card_transaction_id,omitempty"`
	Reference         *string                `gorm:"size:50" json:"reference,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p PaymentRecord) MarshalJSON() ([]byte, error) {
	type Alias PaymentRecord
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment record
func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentRecord model
func (PaymentRecord) TableName() string {
	return "payments"
}
