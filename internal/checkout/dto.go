package checkout

import (
	"github.com/alunakitchen/pickup-backend/internal/cart"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ResolutionDTO previews the effective checkout fields for the
// confirmation screen.
type ResolutionDTO struct {
	Lines         []cart.LineDTO      `json:"lines"`
	Total         decimal.Decimal     `json:"total"`
	Phone         string              `json:"phone"`
	Notes         string              `json:"notes,omitempty"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	PickupAddress string              `json:"pickup_address"`
}

func toResolutionDTO(r Resolution) ResolutionDTO {
	lines := make([]cart.LineDTO, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, cart.LineDTO{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return ResolutionDTO{
		Lines:         lines,
		Total:         r.Total,
		Phone:         r.Phone,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		PickupAddress: r.PickupAddress,
	}
}
