package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog item. Batches carry the quantities and prices;
// the product itself is the thin descriptor the catalog collaborator manages.
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UnitID    *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Title     string         `gorm:"size:100;not null" json:"title"`
	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	Code      string         `gorm:"size:10" json:"code"`
	Barcode   *string        `gorm:"size:30" json:"barcode,omitempty"`
	HasExpiry bool           `gorm:"default:false" json:"has_expiry"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Unit    *Unit        `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Batches []StockBatch `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Unit represents a unit of measurement (piece, meter, kilogram)
type Unit struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:20;not null" json:"name"`
	ShortCode string    `gorm:"size:10" json:"short_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
