package checkout

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/alunakitchen/pickup-backend/internal/cart"
	"github.com/alunakitchen/pickup-backend/internal/orders"
	"github.com/alunakitchen/pickup-backend/internal/profiles"
	"github.com/alunakitchen/pickup-backend/pkg/config"
	"github.com/alunakitchen/pickup-backend/pkg/db"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	changed int
}

func (p *countingPublisher) OrdersChanged(context.Context) {
	p.changed++
}

type checkoutHarness struct {
	svc       Service
	store     *cart.MemoryStore
	publisher *countingPublisher
	orderRepo *orders.Repository
	userID    uuid.UUID
}

func newCheckoutHarness(t *testing.T) *checkoutHarness {
	t.Helper()

	dsn := os.Getenv("ALUNA_DB_DSN")
	if dsn == "" {
		t.Skip("ALUNA_DB_DSN is not set")
	}

	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("checkout_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		IsActive:     true,
	}
	require.NoError(t, client.DB().Create(user).Error)
	t.Cleanup(func() {
		client.DB().Where("user_id = ?", user.ID).Delete(&models.Order{})
		client.DB().Where("user_id = ?", user.ID).Delete(&models.Profile{})
		client.DB().Delete(user)
	})

	profileRepo := profiles.NewRepository(client.DB())
	profileSvc, err := profiles.NewService(profileRepo)
	require.NoError(t, err)
	_, err = profileSvc.UpdateProfile(ctx, user.ID, profiles.UpdateProfileInput{
		FullName: "Juan Dela Cruz",
		Phone:    "09171234567",
	})
	require.NoError(t, err)

	store := cart.NewMemoryStore()
	publisher := &countingPublisher{}
	orderRepo := orders.NewRepository(client.DB())

	svc, err := NewService(store, profileSvc, orderRepo, client, publisher, testPickupAddress, nil)
	require.NoError(t, err)

	return &checkoutHarness{
		svc:       svc,
		store:     store,
		publisher: publisher,
		orderRepo: orderRepo,
		userID:    user.ID,
	}
}

func TestServiceSubmitPersistsAndResetsSession(t *testing.T) {
	h := newCheckoutHarness(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	session := &cart.Session{}
	session.Cart.Add(1, "Crispy Pata", decimal.NewFromInt(100))
	session.Cart.Increment(1)
	session.Cart.Add(2, "Sisig", decimal.NewFromInt(50))
	session.Overrides.Phone = "09990001111"
	require.NoError(t, h.store.Save(ctx, sessionID, session))

	dto, err := h.svc.Submit(ctx, h.userID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "09990001111", dto.Phone)
	assert.True(t, dto.Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, enums.OrderStatusPending, dto.Status)

	persisted, err := h.orderRepo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.True(t, persisted.Total.Equal(decimal.NewFromInt(250)))
	require.Len(t, persisted.Items, 2)

	// Cart cleared, overrides re-seeded from the saved profile.
	after, err := h.store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, after.Cart.IsEmpty())
	assert.Equal(t, "09171234567", after.Overrides.Phone)

	assert.Equal(t, 1, h.publisher.changed)
}

func TestServiceSubmitEmptyCartLeavesSessionUntouched(t *testing.T) {
	h := newCheckoutHarness(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	session := &cart.Session{}
	session.Overrides.Phone = "09990001111"
	session.Overrides.Notes = "leave at counter"
	require.NoError(t, h.store.Save(ctx, sessionID, session))

	_, err := h.svc.Submit(ctx, h.userID, sessionID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	after, err := h.store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "leave at counter", after.Overrides.Notes)
	assert.Equal(t, 0, h.publisher.changed)
}

func TestServiceResolvePreviewsWithoutWriting(t *testing.T) {
	h := newCheckoutHarness(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	session := &cart.Session{}
	session.Cart.Add(1, "Crispy Pata", decimal.NewFromInt(450))
	require.NoError(t, h.store.Save(ctx, sessionID, session))

	resolution, err := h.svc.Resolve(ctx, h.userID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "09171234567", resolution.Phone)
	assert.Equal(t, testPickupAddress, resolution.PickupAddress)

	after, err := h.store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, after.Cart.IsEmpty())
	assert.Equal(t, 0, h.publisher.changed)
}
