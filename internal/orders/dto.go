package orders

import (
	"time"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	"github.com/alunakitchen/pickup-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the customer-facing projection of an order record.
type OrderDTO struct {
	ID            uuid.UUID                `json:"id"`
	Items         types.OrderItemSnapshots `json:"items"`
	Total         decimal.Decimal          `json:"total"`
	Phone         string                   `json:"phone"`
	Notes         *string                  `json:"notes,omitempty"`
	PickupAddress string                   `json:"pickup_address"`
	PaymentMethod enums.PaymentMethod      `json:"payment_method"`
	Status        enums.OrderStatus        `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

// AdminOrderDTO extends the order projection with customer identity
// for the operator console.
type AdminOrderDTO struct {
	OrderDTO
	UserID       uuid.UUID `json:"user_id"`
	CustomerName string    `json:"customer_name"`
}

// ToOrderDTO maps an order row to its customer-facing projection.
func ToOrderDTO(order models.Order) OrderDTO {
	return toOrderDTO(order)
}

func toOrderDTO(order models.Order) OrderDTO {
	return OrderDTO{
		ID:            order.ID,
		Items:         order.Items,
		Total:         order.Total,
		Phone:         order.Phone,
		Notes:         order.Notes,
		PickupAddress: order.PickupAddress,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}
}

func toAdminOrderDTO(order models.Order, names map[uuid.UUID]string) AdminOrderDTO {
	return AdminOrderDTO{
		OrderDTO:     toOrderDTO(order),
		UserID:       order.UserID,
		CustomerName: resolveCustomerName(order.UserID, names),
	}
}

// resolveCustomerName falls back to a truncated user id when no
// profile name is available.
func resolveCustomerName(userID uuid.UUID, names map[uuid.UUID]string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	short := userID.String()
	if len(short) > 8 {
		short = short[:8]
	}
	return "customer " + short
}
