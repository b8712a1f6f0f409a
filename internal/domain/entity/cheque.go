package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Cheque is a deferred-payment instrument attached to a transaction. Its
// amount was already counted as tendered at settlement time; bouncing it
// reverses that, exactly once.
type Cheque struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Number        string            `gorm:"size:20;not null" json:"number"`
	DueDate       time.Time         `gorm:"type:date;not null;index" json:"due_date"`
	Amount        int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CustomerID    *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SupplierID    *uuid.UUID        `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	TransactionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Status        enum.ChequeStatus `gorm:"default:0;index" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Relationships
	Customer    *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Supplier    *Supplier   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Cheque) MarshalJSON() ([]byte, error) {
	type Alias Cheque
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new cheque
func (c *Cheque) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cheque model
func (Cheque) TableName() string {
	return "cheques"
}
