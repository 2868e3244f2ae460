package types

import "github.com/shopspring/decimal"

// OrderItemSnapshot is the frozen copy of one cart line taken at submission.
// It is stored verbatim with the order and never recomputed afterwards.
type OrderItemSnapshot struct {
	ItemID    int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderItemSnapshots is persisted as a jsonb column on orders.
type OrderItemSnapshots []OrderItemSnapshot

// Subtotal returns unit price times quantity for one snapshot line.
func (s OrderItemSnapshot) Subtotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Total sums every line's subtotal.
func (o OrderItemSnapshots) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o {
		total = total.Add(line.Subtotal())
	}
	return total
}
