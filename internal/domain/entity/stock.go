package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockBatch represents one receipt lot of a product with its own pricing,
// expiry and quantity tracking. Batches are never deleted; a sold-out batch
// flips to status "out" and stays as the historical record.
//
// Quantities are decimal (hardware is sold in fractional meters/kilograms),
// prices are stored in cents.
type StockBatch struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ProductID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchNumber     string           `gorm:"size:20" json:"batch_number"`
	QuantityIn      float64          `gorm:"not null;default:0" json:"quantity_in"`
	QuantityOut     float64          `gorm:"not null;default:0" json:"quantity_out"`
	CurrentQuantity float64          `gorm:"not null;default:0" json:"current_quantity"`
	BuyingPrice     int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	MinSellingPrice int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	SellingPrice    int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ExpiryDate      *time.Time       `gorm:"type:date" json:"expiry_date,omitempty"`
	Status          enum.BatchStatus `gorm:"default:0;index" json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	Product   Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Movements []StockMovement `gorm:"foreignKey:BatchID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b StockBatch) MarshalJSON() ([]byte, error) {
	type Alias StockBatch
	return json.Marshal(&struct {
		Alias
		BuyingPrice     float64 `json:"buying_price"`
		MinSellingPrice float64 `json:"min_selling_price"`
		SellingPrice    float64 `json:"selling_price"`
	}{
		Alias:           Alias(b),
		BuyingPrice:     float64(b.BuyingPrice) / 100,
		MinSellingPrice: float64(b.MinSellingPrice) / 100,
		SellingPrice:    float64(b.SellingPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new stock batch
func (b *StockBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockBatch model
func (StockBatch) TableName() string {
	return "stock_batches"
}

// ExpiredAsOf reports whether the batch's expiry date has passed.
// Expiry is observed lazily on read, not by a background timer.
func (b *StockBatch) ExpiredAsOf(now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return b.ExpiryDate.Before(today)
}

// StockMovement is an immutable audit entry recording one in/out mutation of
// a batch, tied to the settlement that caused it. Append-only.
type StockMovement struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	BatchID       uuid.UUID              `gorm:"type:uuid;not null;index" json:"batch_id"`
	Direction     enum.MovementDirection `gorm:"not null" json:"direction"`
	Quantity      float64                `gorm:"not null" json:"quantity"`
	TransactionID uuid.UUID              `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Notes         *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`

	// Relationships
	Batch StockBatch `gorm:"foreignKey:BatchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
