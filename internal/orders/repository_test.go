package orders

import (
	"context"
	"testing"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	owner := mustCreateTestUser(t, tx)
	other := mustCreateTestUser(t, tx)

	mustCreateTestOrder(t, tx, owner.ID, enums.OrderStatusPending)
	mustCreateTestOrder(t, tx, owner.ID, enums.OrderStatusPending)
	mustCreateTestOrder(t, tx, other.ID, enums.OrderStatusPending)

	mine, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(mine))
	}
	for i := 0; i+1 < len(mine); i++ {
		if mine[i].CreatedAt.Before(mine[i+1].CreatedAt) {
			t.Fatal("expected newest order first")
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("expected at least 3 orders, got %d", len(all))
	}
}

func TestRepositoryUpdateStatusConditionalWrite(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	owner := mustCreateTestUser(t, tx)
	order := mustCreateTestOrder(t, tx, owner.ID, enums.OrderStatusPending)

	if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", reloaded.Status)
	}
	if !reloaded.Total.Equal(order.Total) {
		t.Fatalf("expected total untouched, got %s", reloaded.Total)
	}

	// The observed status is stale now, so the conditional write must
	// match nothing and surface a state conflict.
	err = repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusPreparing)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	err = repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusPending, enums.OrderStatusConfirmed)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing order, got %v", err)
	}
}

func TestDistinctUserIDsKeepsFirstSeenOrder(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	ids := DistinctUserIDs([]models.Order{
		{UserID: a},
		{UserID: b},
		{UserID: a},
	})
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Fatalf("expected [%s %s], got %v", a, b, ids)
	}

	if got := DistinctUserIDs(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
