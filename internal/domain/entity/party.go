package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a buying party. Credit is the amount the customer owes
// the shop, in cents; it is mutated only by settlement commits, cheque
// transitions and credit repayments, never edited directly.
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Mobile        *string        `gorm:"size:15;unique" json:"mobile,omitempty"`
	Company       *string        `gorm:"size:100" json:"company,omitempty"`
	StreetAddress *string        `gorm:"size:100" json:"street_address,omitempty"`
	City          *string        `gorm:"size:100" json:"city,omitempty"`
	Credit        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		Credit float64 `json:"credit"`
	}{
		Alias:  Alias(c),
		Credit: float64(c.Credit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Supplier represents a supplying party. Credit is the amount the shop owes
// the supplier, in cents.
type Supplier struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:50" json:"name"`
	CompanyName string         `gorm:"size:50;not null" json:"company_name"`
	Code        *string        `gorm:"size:50" json:"code,omitempty"`
	PhoneNumber *string        `gorm:"size:15" json:"phone_number,omitempty"`
	Email       *string        `gorm:"size:100" json:"email,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Credit      int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:SupplierID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Supplier) MarshalJSON() ([]byte, error) {
	type Alias Supplier
	return json.Marshal(&struct {
		Alias
		Credit float64 `json:"credit"`
	}{
		Alias:  Alias(s),
		Credit: float64(s.Credit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
