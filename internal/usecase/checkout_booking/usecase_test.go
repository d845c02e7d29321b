package checkout_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CreateHistory(ctx context.Context, r *domain.BookingHistoryRecord) (*domain.BookingHistoryRecord, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingHistoryRecord), args.Error(1)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_MovesBookingToHistory(t *testing.T) {
	now := time.Date(2025, 1, 12, 11, 0, 0, 0, time.UTC)
	repo := new(mockBookingRepo)
	booking := &domain.Booking{ID: 3, RoomName: "Twin Room"}

	repo.On("GetByID", mock.Anything, int64(3)).Return(booking, nil)
	repo.On("CreateHistory", mock.Anything, mock.MatchedBy(func(r *domain.BookingHistoryRecord) bool {
		return r.Booking.ID == 3 && r.CheckedOutAt.Equal(now) && *r.CheckedOutBy == 77
	})).Return(&domain.BookingHistoryRecord{ID: 10, Booking: *booking}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	uc := NewUseCase(repo, passTx{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 3, StaffID: ptr.Ptr(int64(77))})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Record.ID)
	repo.AssertExpectations(t)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(3)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := NewUseCase(repo, passTx{}, nopLogger{}).Execute(context.Background(), &Request{BookingID: 3})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("history write fails, booking stays", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Booking{ID: 3}, nil)
		repo.On("CreateHistory", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		_, err := NewUseCase(repo, passTx{}, nopLogger{}).Execute(context.Background(), &Request{BookingID: 3})
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("concurrent checkout removed booking", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Booking{ID: 3}, nil)
		repo.On("CreateHistory", mock.Anything, mock.Anything).Return(&domain.BookingHistoryRecord{ID: 11}, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(bookingRepo.ErrBookingNotFound)

		resp, err := NewUseCase(repo, passTx{}, nopLogger{}).Execute(context.Background(), &Request{BookingID: 3})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
		assert.Nil(t, resp)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := NewUseCase(new(mockBookingRepo), passTx{}, nopLogger{}).Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
