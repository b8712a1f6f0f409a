package receipt

import (
	"fmt"
	"strings"
	"time"
)

// Receipt is a settled transaction flattened for rendering. All money fields
// are in cents.
type Receipt struct {
	ShopName   string
	ShopPhone  string
	Number     string
	IssuedAt   time.Time
	CashierID  string
	PartyName  string
	Lines      []Line
	SubTotal   int64
	Discount   int64
	Tax        int64
	Total      int64
	Paid       int64
	Balance    int64
	IsPurchase bool
}

// Line is a single receipt row.
type Line struct {
	Title     string
	Quantity  float64
	UnitPrice int64
	LineTotal int64
}

const width = 42

func money(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func row(left, right string) string {
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// Format renders the receipt as fixed-width text for an 80mm roll.
func (r *Receipt) Format() string {
	var b strings.Builder
	line := strings.Repeat("-", width)

	b.WriteString(center(r.ShopName) + "\n")
	if r.ShopPhone != "" {
		b.WriteString(center("Tel: "+r.ShopPhone) + "\n")
	}
	b.WriteString(line + "\n")

	kind := "SALE"
	if r.IsPurchase {
		kind = "PURCHASE"
	}
	b.WriteString(row(kind+" #"+r.Number, r.IssuedAt.Format("2006-01-02 15:04")) + "\n")
	if r.PartyName != "" {
		b.WriteString("Account: " + r.PartyName + "\n")
	}
	b.WriteString(line + "\n")

	for _, l := range r.Lines {
		b.WriteString(l.Title + "\n")
		qty := fmt.Sprintf("  %.2f x %s", l.Quantity, money(l.UnitPrice))
		b.WriteString(row(qty, money(l.LineTotal)) + "\n")
	}

	b.WriteString(line + "\n")
	b.WriteString(row("Subtotal", money(r.SubTotal)) + "\n")
	if r.Discount != 0 {
		b.WriteString(row("Discount", money(r.Discount)) + "\n")
	}
	if r.Tax != 0 {
		b.WriteString(row("Tax", money(r.Tax)) + "\n")
	}
	b.WriteString(row("TOTAL", money(r.Total)) + "\n")
	b.WriteString(row("Paid", money(r.Paid)) + "\n")
	b.WriteString(row("Balance", money(r.Balance)) + "\n")
	b.WriteString(line + "\n")
	b.WriteString(center("Thank you, come again!") + "\n")

	return b.String()
}
