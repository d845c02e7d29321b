package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BookingCounters(t *testing.T) {
	m := New("hotel-booking")

	m.IncBookingCreated("staff")
	m.IncBookingCreated("staff")
	m.IncBookingCreated("online")
	m.IncBookingConflict("online")
	m.IncNotificationFailure("booking_confirmation")
	m.SetActiveFlows(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("staff")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures.WithLabelValues("booking_confirmation")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ActiveFlows.WithLabelValues()))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("staff")
		m.IncBookingConflict("staff")
		m.IncNotificationFailure("decline")
		m.SetActiveFlows(1)
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	first := New("hotel-booking")
	second := New("hotel-booking")

	first.IncBookingCreated("staff")

	assert.Equal(t, 1.0, testutil.ToFloat64(first.BookingsCreated.WithLabelValues("staff")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.BookingsCreated.WithLabelValues("staff")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("hotel-booking")
	m.IncBookingCreated("online")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `bookings_created_total{service="hotel-booking",source="online"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
