package workspace

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

// CartState tracks where a draft sits in its settlement lifecycle.
type CartState int

const (
	StateDraft CartState = iota
	StateReviewing
	StateCommitting
	StateCommitted
	StateFailed
)

var cartStateNames = [...]string{"draft", "reviewing", "committing", "committed", "failed"}

func (s CartState) String() string {
	if int(s) < len(cartStateNames) {
		return cartStateNames[s]
	}
	return "unknown"
}

var (
	ErrCartNotEditable   = errors.New("cart is not editable in its current state")
	ErrCartNotReviewing  = errors.New("cart has not been reviewed")
	ErrCartNotCommitting = errors.New("cart is not mid-commit")
	ErrCartEmpty         = errors.New("cart has no lines")
	ErrLineNotFound      = errors.New("line not found in cart")
)

// Line is one draft row. For sales it references an existing batch and keeps
// the on-hand quantity observed when the line was added, so edits can clamp
// locally without a round trip. For purchases it describes the batch that the
// goods receipt will create.
type Line struct {
	BatchID      uuid.UUID
	ProductID    uuid.UUID
	Title        string
	BatchNumber  string
	Quantity     float64
	UnitPrice    int64 // cents
	MinPrice     int64 // cents, advisory floor for sales
	ListPrice    int64 // cents, the batch's marked selling price
	Available    float64
	BelowMinimum bool

	// Purchase-only batch pricing for the receipt being drafted.
	SellingPrice    int64
	MinSellingPrice int64
	ExpiryDate      *time.Time
}

// LineTotal returns quantity times unit price, rounded to cents.
func (l *Line) LineTotal() int64 {
	return int64(math.Round(l.Quantity * float64(l.UnitPrice)))
}

// DiscountTotal returns how far below the list price this line sells,
// in cents across the whole quantity. Never negative.
func (l *Line) DiscountTotal() int64 {
	perUnit := l.ListPrice - l.UnitPrice
	if perUnit <= 0 {
		return 0
	}
	return int64(math.Round(l.Quantity * float64(perUnit)))
}

// Cart is an in-memory draft transaction. Nothing touches storage until the
// settlement engine commits it.
type Cart struct {
	mu    sync.Mutex
	kind  enum.TransactionKind
	state CartState
	lines []*Line
}

// NewCart creates an empty draft of the given kind.
func NewCart(kind enum.TransactionKind) *Cart {
	return &Cart{kind: kind, state: StateDraft}
}

func (c *Cart) Kind() enum.TransactionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *Cart) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AddLine merges the line into the draft. For sales the resulting quantity is
// clamped to the observed on-hand amount, and a clamp to zero drops the line.
// Returns true when clamping changed the requested quantity.
func (c *Cart) AddLine(line Line) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraft {
		return false, ErrCartNotEditable
	}
	if line.Quantity < 0 {
		line.Quantity = 0
	}

	for i, existing := range c.lines {
		if existing.BatchID == line.BatchID {
			return c.setQuantityLocked(i, existing.Quantity+line.Quantity)
		}
	}

	clamped := false
	if c.kind == enum.TransactionKindSale && line.Quantity > line.Available {
		line.Quantity = line.Available
		clamped = true
	}
	if line.Quantity <= 0 {
		return clamped, nil
	}
	line.BelowMinimum = c.kind == enum.TransactionKindSale && line.UnitPrice < line.MinPrice

	copied := line
	c.lines = append(c.lines, &copied)
	return clamped, nil
}

// SetQuantity replaces a line's quantity, clamping sales to on-hand stock.
// Zero (or a clamp to zero) removes the line.
func (c *Cart) SetQuantity(batchID uuid.UUID, qty float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraft {
		return false, ErrCartNotEditable
	}
	for i, line := range c.lines {
		if line.BatchID == batchID {
			return c.setQuantityLocked(i, qty)
		}
	}
	return false, ErrLineNotFound
}

func (c *Cart) setQuantityLocked(i int, qty float64) (bool, error) {
	line := c.lines[i]
	clamped := false

	if qty < 0 {
		qty = 0
	}
	if c.kind == enum.TransactionKindSale && qty > line.Available {
		qty = line.Available
		clamped = true
	}
	if qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return clamped, nil
	}
	line.Quantity = qty
	return clamped, nil
}

// SetUnitPrice overrides a line's unit price. Selling below the batch minimum
// is allowed; the line is only flagged so the UI can warn.
func (c *Cart) SetUnitPrice(batchID uuid.UUID, price int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraft {
		return ErrCartNotEditable
	}
	for _, line := range c.lines {
		if line.BatchID == batchID {
			line.UnitPrice = price
			line.BelowMinimum = c.kind == enum.TransactionKindSale && price < line.MinPrice
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine drops a line from the draft.
func (c *Cart) RemoveLine(batchID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraft {
		return ErrCartNotEditable
	}
	for i, line := range c.lines {
		if line.BatchID == batchID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a snapshot of the draft rows.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// SubTotal sums all line totals in cents.
func (c *Cart) SubTotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// DiscountTotal sums the below-list discounts across lines in cents.
func (c *Cart) DiscountTotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.DiscountTotal()
	}
	return total
}

// Review freezes the draft for operator confirmation.
func (c *Cart) Review() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraft {
		return ErrCartNotEditable
	}
	if len(c.lines) == 0 {
		return ErrCartEmpty
	}
	c.state = StateReviewing
	return nil
}

// Reopen returns a reviewing or failed cart to draft for further edits.
func (c *Cart) Reopen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReviewing && c.state != StateFailed {
		return ErrCartNotReviewing
	}
	c.state = StateDraft
	return nil
}

// BeginCommit marks the cart as handed to the settlement engine. Further
// edits are rejected until the commit resolves.
func (c *Cart) BeginCommit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReviewing {
		return ErrCartNotReviewing
	}
	c.state = StateCommitting
	return nil
}

// MarkCommitted records a successful settlement.
func (c *Cart) MarkCommitted() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCommitting {
		return ErrCartNotCommitting
	}
	c.state = StateCommitted
	return nil
}

// MarkFailed records a rolled-back settlement. The lines are untouched, so
// the operator can reopen, adjust and retry.
func (c *Cart) MarkFailed() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCommitting {
		return ErrCartNotCommitting
	}
	c.state = StateFailed
	return nil
}
