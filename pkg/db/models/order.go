package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alunakitchen/pickup-backend/pkg/enums"
	"github.com/alunakitchen/pickup-backend/pkg/types"
)

// Order is the durable record created by a successful checkout. The items
// snapshot and total are frozen at submission; only status mutates afterwards,
// and only through the status workflow.
type Order struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	Items         types.OrderItemSnapshots `gorm:"column:items;type:jsonb;serializer:json;not null"`
	Total         decimal.Decimal          `gorm:"column:total;type:numeric(10,2);not null"`
	Phone         string                   `gorm:"column:phone;not null"`
	Notes         *string                  `gorm:"column:notes"`
	PickupAddress string                   `gorm:"column:pickup_address;not null"`
	PaymentMethod enums.PaymentMethod      `gorm:"column:payment_method;type:text;not null;default:'pickup'"`
	Status        enums.OrderStatus        `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
