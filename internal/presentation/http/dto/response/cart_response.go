package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/workspace"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

// CartLineView is one drafted line with decimal money for the client.
type CartLineView struct {
	BatchID      uuid.UUID  `json:"batch_id"`
	ProductID    uuid.UUID  `json:"product_id"`
	Title        string     `json:"title"`
	BatchNumber  string     `json:"batch_number,omitempty"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
	LineTotal    float64    `json:"line_total"`
	Available    float64    `json:"available,omitempty"`
	BelowMinimum bool       `json:"below_minimum,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
}

// CartView is the full state of one tab.
type CartView struct {
	TabID    uuid.UUID            `json:"tab_id"`
	Kind     enum.TransactionKind `json:"kind"`
	State    string               `json:"state"`
	Lines    []CartLineView       `json:"lines"`
	SubTotal float64              `json:"sub_total"`
	Discount float64              `json:"discount"`
}

// NewCartView flattens a cart for the API.
func NewCartView(tabID uuid.UUID, cart *workspace.Cart) *CartView {
	lines := cart.Lines()
	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, CartLineView{
			BatchID:      line.BatchID,
			ProductID:    line.ProductID,
			Title:        line.Title,
			BatchNumber:  line.BatchNumber,
			Quantity:     line.Quantity,
			UnitPrice:    float64(line.UnitPrice) / 100,
			LineTotal:    float64(line.LineTotal()) / 100,
			Available:    line.Available,
			BelowMinimum: line.BelowMinimum,
			ExpiryDate:   line.ExpiryDate,
		})
	}
	return &CartView{
		TabID:    tabID,
		Kind:     cart.Kind(),
		State:    cart.State().String(),
		Lines:    views,
		SubTotal: float64(cart.SubTotal()) / 100,
		Discount: float64(cart.DiscountTotal()) / 100,
	}
}
