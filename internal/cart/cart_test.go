package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCartAddMergesLines(t *testing.T) {
	var c Cart
	c.Add(1, "Crispy Pata", price(450))
	c.Add(2, "Sisig", price(180))
	c.Add(1, "Crispy Pata", price(450))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
	assert.Equal(t, int64(1), c.Lines[0].ItemID)
}

func TestCartDecrementRemovesAtZero(t *testing.T) {
	var c Cart
	c.Add(1, "Crispy Pata", price(450))
	c.Increment(1)

	c.Decrement(1)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c.Decrement(1)
	assert.Empty(t, c.Lines)

	// Unknown id is a no-op.
	c.Decrement(99)
	assert.Empty(t, c.Lines)
}

func TestCartSetQuantityDefensiveParsing(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantQty  int
		wantGone bool
	}{
		{name: "integer", raw: "3", wantQty: 3},
		{name: "floorsFraction", raw: "2.9", wantQty: 2},
		{name: "trimsSpace", raw: " 4 ", wantQty: 4},
		{name: "zeroRemoves", raw: "0", wantGone: true},
		{name: "negativeRemoves", raw: "-2", wantGone: true},
		{name: "garbageRemoves", raw: "abc", wantGone: true},
		{name: "emptyRemoves", raw: "", wantGone: true},
		{name: "infRemoves", raw: "inf", wantGone: true},
		{name: "nanRemoves", raw: "NaN", wantGone: true},
		{name: "fractionBelowOneRemoves", raw: "0.4", wantGone: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Cart
			c.Add(1, "Crispy Pata", price(450))
			c.SetQuantity(1, tc.raw)
			if tc.wantGone {
				assert.Empty(t, c.Lines)
				return
			}
			require.Len(t, c.Lines, 1)
			assert.Equal(t, tc.wantQty, c.Lines[0].Quantity)
		})
	}
}

// No mutation sequence may ever leave a line with quantity below 1.
func TestCartNeverHoldsNonPositiveQuantities(t *testing.T) {
	var c Cart
	ops := []func(){
		func() { c.Add(1, "Crispy Pata", price(450)) },
		func() { c.Decrement(1) },
		func() { c.Decrement(1) },
		func() { c.Add(2, "Sisig", price(180)) },
		func() { c.SetQuantity(2, "0") },
		func() { c.Add(2, "Sisig", price(180)) },
		func() { c.SetQuantity(2, "-5") },
		func() { c.Add(3, "Halo-Halo", price(120)) },
		func() { c.SetQuantity(3, "2.7") },
		func() { c.Increment(3) },
		func() { c.Decrement(99) },
	}
	for _, op := range ops {
		op()
		for _, line := range c.Lines {
			require.GreaterOrEqual(t, line.Quantity, 1)
		}
	}
}

func TestCartTotalMatchesIndependentRecompute(t *testing.T) {
	var c Cart
	c.Add(1, "Crispy Pata", price(450))
	c.Increment(1)
	c.Add(2, "Sisig", price(180))
	c.SetQuantity(2, "3")
	c.Add(3, "Halo-Halo", price(120))
	c.Remove(3)

	expected := decimal.Zero
	for _, line := range c.Lines {
		expected = expected.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	assert.True(t, c.Total().Equal(expected), "total %s != recomputed %s", c.Total(), expected)
	assert.True(t, c.Total().Equal(price(1440)))
}

func TestCartSnapshotIsDetached(t *testing.T) {
	var c Cart
	c.Add(1, "Crispy Pata", price(450))

	snapshot := c.Snapshot()
	c.Increment(1)
	c.Add(2, "Sisig", price(180))

	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Quantity)
}
