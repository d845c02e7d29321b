package decline_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	declineBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/decline_booking"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *declineBooking.Request) (*declineBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*declineBooking.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/decline", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+id+"/decline", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), 3, middleware.RoleStaff))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Declined(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *declineBooking.Request) bool {
		return req.BookingID == 42 && req.Reason == "overbooked" && *req.StaffID == 3
	})).Return(&declineBooking.Response{
		Declined: &domain.DeclinedBooking{ID: 1, Reason: "overbooked"},
	}, nil)

	rec := serve(uc, "42", `{"reason":"overbooked"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notificationSent":false`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty reason", err: declineBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: declineBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "staff booking", err: declineBooking.ErrNotOnlineBooking, wantStatus: http.StatusConflict},
		{name: "store", err: declineBooking.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.wantStatus, serve(uc, "42", `{"reason":" "}`).Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := new(mockUseCase)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "abc", `{"reason":"x"}`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
