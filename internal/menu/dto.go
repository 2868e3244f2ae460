package menu

import (
	"time"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ItemDTO is the public projection of a menu item.
type ItemDTO struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	ImageURL        *string         `json:"image_url,omitempty"`
	Weight          *string         `json:"weight,omitempty"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Price           decimal.Decimal `json:"price"`
	IsFeatured      bool            `json:"is_featured"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toItemDTO(item models.MenuItem) ItemDTO {
	return ItemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		ImageURL:        item.ImageURL,
		Weight:          item.Weight,
		PrepTimeMinutes: item.PrepTimeMinutes,
		Price:           item.Price,
		IsFeatured:      item.IsFeatured,
		CreatedAt:       item.CreatedAt,
	}
}
