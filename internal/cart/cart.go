package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is a single menu item and its quantity within an open cart.
type Line struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart holds the open order for one session. Lines keep insertion
// order and hold at most one entry per item id, always with a
// quantity of at least 1.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add inserts a new line with quantity 1, or bumps the quantity of an
// existing line for the same item.
func (c *Cart) Add(itemID int64, name string, unitPrice decimal.Decimal) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// Increment bumps the quantity of the given line by one. Unknown ids
// are ignored.
func (c *Cart) Increment(itemID int64) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the given line by one, removing
// the line when it would drop below 1. Unknown ids are ignored.
func (c *Cart) Decrement(itemID int64) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			if c.Lines[i].Quantity <= 1 {
				c.removeAt(i)
				return
			}
			c.Lines[i].Quantity--
			return
		}
	}
}

// SetQuantity parses raw free-form input. Unparseable, non-finite, or
// non-positive values remove the line; anything else sets the
// quantity to the floor of the parsed value.
func (c *Cart) SetQuantity(itemID int64, raw string) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		c.Remove(itemID)
		return
	}
	quantity := int(math.Floor(value))
	if quantity < 1 {
		c.Remove(itemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for the given item if present.
func (c *Cart) Remove(itemID int64) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.removeAt(i)
			return
		}
	}
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total recomputes the cart total from the current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Snapshot returns a deep copy of the current lines. Mutating the
// cart afterwards does not affect the returned slice.
func (c *Cart) Snapshot() []Line {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}
