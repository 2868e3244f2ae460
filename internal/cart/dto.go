package cart

import "github.com/shopspring/decimal"

// CartDTO is the public projection of a session cart.
type CartDTO struct {
	Lines []LineDTO       `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// LineDTO is the public projection of one cart line.
type LineDTO struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func toCartDTO(c *Cart) *CartDTO {
	dto := &CartDTO{
		Lines: make([]LineDTO, 0, len(c.Lines)),
		Count: c.Count(),
		Total: c.Total(),
	}
	for _, line := range c.Lines {
		dto.Lines = append(dto.Lines, LineDTO{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return dto
}
