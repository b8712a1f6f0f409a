package request

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Money amounts cross the wire as decimals and are stored as cents.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// OpenTabRequest opens a new transaction tab.
type OpenTabRequest struct {
	Kind string `json:"kind" binding:"required,oneof=sale purchase"`
}

// AddSaleLineRequest puts a batch on a sale tab.
type AddSaleLineRequest struct {
	BatchID   uuid.UUID `json:"batch_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64  `json:"unit_price"` // defaults to the batch's selling price
}

// AddPurchaseLineRequest puts an incoming batch on a purchase tab.
type AddPurchaseLineRequest struct {
	ProductID       uuid.UUID  `json:"product_id" binding:"required"`
	BatchNumber     string     `json:"batch_number"`
	Quantity        float64    `json:"quantity" binding:"required,gt=0"`
	BuyingPrice     float64    `json:"buying_price" binding:"required,gt=0"`
	SellingPrice    float64    `json:"selling_price" binding:"required,gt=0"`
	MinSellingPrice float64    `json:"min_selling_price" binding:"required,gt=0"`
	ExpiryDate      *time.Time `json:"expiry_date"`
}

func (r *AddPurchaseLineRequest) BuyingPriceCents() int64     { return toCents(r.BuyingPrice) }
func (r *AddPurchaseLineRequest) SellingPriceCents() int64    { return toCents(r.SellingPrice) }
func (r *AddPurchaseLineRequest) MinSellingPriceCents() int64 { return toCents(r.MinSellingPrice) }

// UpdateLineRequest edits a drafted line. Quantity zero removes the line.
type UpdateLineRequest struct {
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// TenderRequest is the money offered at commit, decimal per instrument.
type TenderRequest struct {
	Cash          float64 `json:"cash"`
	Card          float64 `json:"card"`
	CardReference *string `json:"card_reference"`
	Bank          float64 `json:"bank"`
	BankReference *string `json:"bank_reference"`
	Cheque        float64 `json:"cheque"`
	ChequeNumber  string  `json:"cheque_number"`
	ChequeDueDate *string `json:"cheque_due_date"` // YYYY-MM-DD
}

func (r *TenderRequest) CashCents() int64   { return toCents(r.Cash) }
func (r *TenderRequest) CardCents() int64   { return toCents(r.Card) }
func (r *TenderRequest) BankCents() int64   { return toCents(r.Bank) }
func (r *TenderRequest) ChequeCents() int64 { return toCents(r.Cheque) }

// NewCustomerRequest registers a customer inline at commit time.
type NewCustomerRequest struct {
	Name   string  `json:"name" binding:"required"`
	Mobile *string `json:"mobile"`
	City   *string `json:"city"`
}

// CommitRequest settles a reviewed tab. Discount is the whole-bill discount
// in currency units, entered by the cashier at settlement.
type CommitRequest struct {
	CustomerID  *uuid.UUID          `json:"customer_id"`
	NewCustomer *NewCustomerRequest `json:"new_customer"`
	SupplierID  *uuid.UUID          `json:"supplier_id"`
	Discount    float64             `json:"discount"`
	Tender      TenderRequest       `json:"tender"`
	Notes       *string             `json:"notes"`
}

func (r *CommitRequest) DiscountCents() int64 { return toCents(r.Discount) }

// CreateProductRequest registers a catalog item.
type CreateProductRequest struct {
	Title     string     `json:"title" binding:"required"`
	Note      *string    `json:"note"`
	Code      string     `json:"code"`
	Barcode   *string    `json:"barcode"`
	HasExpiry bool       `json:"has_expiry"`
	UnitID    *uuid.UUID `json:"unit_id"`
}

// CreateCustomerRequest registers a customer.
type CreateCustomerRequest struct {
	Name          string  `json:"name" binding:"required"`
	Mobile        *string `json:"mobile"`
	Company       *string `json:"company"`
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
}

// CreateSupplierRequest registers a supplier.
type CreateSupplierRequest struct {
	Name        string  `json:"name"`
	CompanyName string  `json:"company_name" binding:"required"`
	Code        *string `json:"code"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// RepayCreditRequest pays down an account balance.
type RepayCreditRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (r *RepayCreditRequest) AmountCents() int64 { return toCents(r.Amount) }

// ChequeStatusRequest settles one cheque.
type ChequeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid bounced"`
}

// BatchChequeStatusRequest settles several cheques at once.
type BatchChequeStatusRequest struct {
	ChequeIDs []uuid.UUID `json:"cheque_ids" binding:"required,min=1"`
	Status    string      `json:"status" binding:"required,oneof=paid bounced"`
}
