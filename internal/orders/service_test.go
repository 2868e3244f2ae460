package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type countingPublisher struct {
	changes int
}

func (p *countingPublisher) OrdersChanged(ctx context.Context) {
	p.changes++
}

type stubNameResolver struct {
	names map[uuid.UUID]string
	err   error
}

func (s stubNameResolver) DisplayNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return s.names, s.err
}

func errCode(err error) pkgerrors.Code {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ""
	}
	return typed.Code()
}

func newDBService(t *testing.T, tx *gorm.DB, resolver nameResolver, publisher changePublisher) Service {
	t.Helper()
	svc, err := NewService(NewRepository(tx), resolver, publisher, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceGetMineRefusesForeignOrders(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	t.Cleanup(func() { tx.Rollback() })

	owner := mustCreateTestUser(t, tx)
	other := mustCreateTestUser(t, tx)
	order := mustCreateTestOrder(t, tx, owner.ID, enums.OrderStatusPending)

	svc := newDBService(t, tx, stubNameResolver{}, &countingPublisher{})
	ctx := context.Background()

	got, err := svc.GetMine(ctx, owner.ID, order.ID)
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("unexpected order: %s", got.ID)
	}

	if _, err := svc.GetMine(ctx, other.ID, order.ID); errCode(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestServiceTransitionEnforcesForwardSteps(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	t.Cleanup(func() { tx.Rollback() })

	user := mustCreateTestUser(t, tx)
	order := mustCreateTestOrder(t, tx, user.ID, enums.OrderStatusPending)

	publisher := &countingPublisher{}
	svc := newDBService(t, tx, stubNameResolver{}, publisher)
	ctx := context.Background()

	if _, err := svc.Transition(ctx, order.ID, enums.OrderStatusReady); errCode(err) != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for skipped step, got %v", err)
	}
	if publisher.changes != 0 {
		t.Fatal("rejected transition must not publish")
	}

	dto, err := svc.Transition(ctx, order.ID, enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("forward transition failed: %v", err)
	}
	if dto.Status != enums.OrderStatusConfirmed {
		t.Fatalf("unexpected status: %s", dto.Status)
	}
	if publisher.changes != 1 {
		t.Fatalf("expected one change signal, got %d", publisher.changes)
	}
}

func TestServiceTransitionCancelFromNonTerminal(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	t.Cleanup(func() { tx.Rollback() })

	user := mustCreateTestUser(t, tx)
	order := mustCreateTestOrder(t, tx, user.ID, enums.OrderStatusPreparing)

	svc := newDBService(t, tx, stubNameResolver{}, &countingPublisher{})

	dto, err := svc.Transition(context.Background(), order.ID, enums.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if dto.Status != enums.OrderStatusCancelled {
		t.Fatalf("unexpected status: %s", dto.Status)
	}

	if _, err := svc.Transition(context.Background(), order.ID, enums.OrderStatusCompleted); errCode(err) != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict from terminal status, got %v", err)
	}
}

func TestServiceListAllDegradesOnNameLookupFailure(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	t.Cleanup(func() { tx.Rollback() })

	user := mustCreateTestUser(t, tx)
	mustCreateTestOrder(t, tx, user.ID, enums.OrderStatusPending)

	svc := newDBService(t, tx, stubNameResolver{err: fmt.Errorf("boom")}, &countingPublisher{})

	rows, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("listing must survive name lookup failure: %v", err)
	}

	found := false
	for _, row := range rows {
		if row.UserID == user.ID {
			found = true
			if row.CustomerName == "" {
				t.Fatal("expected fallback customer name")
			}
		}
	}
	if !found {
		t.Fatal("expected order in listing")
	}
}
