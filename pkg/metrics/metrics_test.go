package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingConflict(ConflictSourcePrecheck)
	m.IncBookingConflict(ConflictSourceConstraint)
	m.IncBookingConflict(ConflictSourceConstraint)
	m.IncBookingCancelled()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues(ConflictSourcePrecheck)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues(ConflictSourceConstraint)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsCancelled))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict(ConflictSourcePrecheck)
		m.IncBookingCancelled()
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.SetDBStats("main", 1, 1, 0, 0)
		m.ObserveDBQuery("query", time.Millisecond)
	})
}
