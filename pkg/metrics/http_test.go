package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPMetricsNilRegisterer(t *testing.T) {
	m := NewHTTPMetrics(nil)
	require.NotNil(t, m)

	// Must not panic when nothing is registered.
	m.Observe("GET", "/api/v1/menu", 200, 25*time.Millisecond)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/menu", 200, 10*time.Millisecond)
	m.Observe("GET", "/api/v1/menu", 200, 15*time.Millisecond)
	m.Observe("POST", "/api/v1/checkout", 409, 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/menu", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/checkout", "409")))
}

func TestHTTPMetricsObserveEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("", "", 500, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("unknown", "unknown", "500")))
}
