package enums

import "testing"

func TestOrderStatusForwardPath(t *testing.T) {
	path := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", path[i], path[i+1])
		}
	}
}

func TestOrderStatusRejectsSkips(t *testing.T) {
	cases := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusPending, OrderStatusPreparing},
		{OrderStatusConfirmed, OrderStatusReady},
		{OrderStatusReady, OrderStatusPending},
		{OrderStatusPreparing, OrderStatusConfirmed},
	}
	for _, c := range cases {
		if c.from.CanTransition(c.to) {
			t.Fatalf("expected %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestOrderStatusCancellable(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if !from.CanTransition(OrderStatusCancelled) {
			t.Fatalf("expected %s to be cancellable", from)
		}
	}
	if OrderStatusCompleted.CanTransition(OrderStatusCancelled) {
		t.Fatal("completed orders must not be cancellable")
	}
	if OrderStatusCancelled.CanTransition(OrderStatusPending) {
		t.Fatal("cancelled is terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("preparing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
