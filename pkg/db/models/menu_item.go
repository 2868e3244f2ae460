package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is one orderable entry on the storefront menu.
type MenuItem struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string          `gorm:"column:name;not null"`
	Description     *string         `gorm:"column:description"`
	ImageURL        *string         `gorm:"column:image_url"`
	Weight          *string         `gorm:"column:weight"`
	PrepTimeMinutes int             `gorm:"column:prep_time_minutes;not null;default:0"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsFeatured      bool            `gorm:"column:is_featured;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
