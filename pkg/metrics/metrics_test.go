package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveBookingStep(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "pool-booking")

	m.ObserveBookingStep("book", "success")
	m.ObserveBookingStep("book", "success")
	m.ObserveBookingStep("set_password", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingSteps.WithLabelValues("book", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingSteps.WithLabelValues("set_password", "error")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBookingStep("book", "success")
		m.ObserveVerification("verified")
		m.ObserveUpstreamError("crm", "book")
	})
}
