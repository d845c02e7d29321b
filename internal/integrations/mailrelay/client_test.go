package mailrelay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func payload() BookingConfirmation {
	return BookingConfirmation{
		Email:        "anna@example.com",
		FirstName:    "Anna",
		LastName:     "Ivanova",
		SelectedRoom: "Twin Room",
		CheckInDate:  "2025-01-10",
		CheckOutDate: "2025-01-12",
		Nights:       2,
		TotalCost:    "3000.00",
		BookingID:    7,
	}
}

func TestClient_SendBookingConfirmation(t *testing.T) {
	var got BookingConfirmation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, confirmationPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("Email sent successfully"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nopLogger{})
	require.NoError(t, c.SendBookingConfirmation(context.Background(), payload()))
	assert.Equal(t, payload(), got)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrRejected},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, nopLogger{})
			err := c.SendBookingConfirmation(context.Background(), payload())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nopLogger{})
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, c.SendBookingConfirmation(context.Background(), payload()), ErrInvalidResponse)
	}

	err := c.SendBookingConfirmation(context.Background(), payload())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_RejectedPayloadDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nopLogger{})
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, c.SendBookingConfirmation(context.Background(), payload()), ErrRejected)
	}
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})
	err := c.SendBookingConfirmation(context.Background(), payload())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_SendEmail(t *testing.T) {
	var got Email
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, emailPath, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nopLogger{})
	email := Email{Email: "anna@example.com", Name: "Anna", Subject: "Booking declined", Message: "Sorry"}

	require.NoError(t, c.SendEmail(context.Background(), email))
	assert.Equal(t, email, got)
}
