package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedDeliversToAllSubscribers(t *testing.T) {
	feed := NewFeed()
	ctx := context.Background()

	first, cancelFirst := feed.Subscribe()
	second, cancelSecond := feed.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	feed.OrdersChanged(ctx)

	select {
	case <-first:
	default:
		t.Fatal("first subscriber missed the signal")
	}
	select {
	case <-second:
	default:
		t.Fatal("second subscriber missed the signal")
	}
}

func TestFeedCoalescesBursts(t *testing.T) {
	feed := NewFeed()
	ctx := context.Background()

	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.OrdersChanged(ctx)
	feed.OrdersChanged(ctx)
	feed.OrdersChanged(ctx)

	// A burst collapses into a single pending signal.
	<-ch
	select {
	case <-ch:
		t.Fatal("expected burst to coalesce into one signal")
	default:
	}
}

func TestFeedCancelStopsDelivery(t *testing.T) {
	feed := NewFeed()
	ctx := context.Background()

	ch, cancel := feed.Subscribe()
	cancel()

	// Cancel closes the channel and double-cancel is safe.
	_, ok := <-ch
	assert.False(t, ok)
	require.NotPanics(t, cancel)

	feed.OrdersChanged(ctx)
}
