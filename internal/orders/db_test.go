package orders

import (
	"fmt"
	"os"
	"testing"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	"github.com/alunakitchen/pickup-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("ALUNA_DB_DSN")
	if dsn == "" {
		t.Skip("ALUNA_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("orders_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestOrder(t *testing.T, tx *gorm.DB, userID uuid.UUID, status enums.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: types.OrderItemSnapshots{
			{ItemID: 1, Name: "Crispy Pata", UnitPrice: decimal.NewFromInt(450), Quantity: 2},
		},
		Total:         decimal.NewFromInt(900),
		Phone:         "09171234567",
		PickupAddress: "124 F.Vergel Concepcion Baliuag Bulacan (Pickup Only)",
		PaymentMethod: enums.PaymentMethodPickup,
		Status:        status,
	}
	if err := tx.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}
