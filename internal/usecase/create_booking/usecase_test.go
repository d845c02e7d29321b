package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/mailrelay"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, b), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Booking, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendBookingConfirmation(ctx context.Context, p mailrelay.BookingConfirmation) error {
	return m.Called(ctx, p).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncBookingCreated(source string)    { m.Called(source) }
func (m *mockMetrics) IncBookingConflict(source string)   { m.Called(source) }
func (m *mockMetrics) IncNotificationFailure(kind string) { m.Called(kind) }

// fakeTx выполняет fn без БД, commitErr имитирует ошибку фиксации
type fakeTx struct {
	calls     int
	commitErr error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	rooms    *mockRoomRepo
	bookings *mockBookingRepo
	notifier *mockNotifier
	metrics  *mockMetrics
	tx       *fakeTx
	uc       *UseCase
	room     *domain.Room
}

func newFixture(t *testing.T, policy availability.CheckoutPolicy) *fixture {
	t.Helper()

	f := &fixture{
		rooms:    new(mockRoomRepo),
		bookings: new(mockBookingRepo),
		notifier: new(mockNotifier),
		metrics:  new(mockMetrics),
		tx:       &fakeTx{},
		room: &domain.Room{
			ID:         uuid.New(),
			Name:       "Twin Room",
			RatePerDay: 1500,
			Capacity:   2,
			Status:     domain.RoomAvailable,
		},
	}

	f.uc = NewUseCase(f.rooms, f.bookings, availability.NewEngine(policy), f.notifier, f.tx, f.metrics, time.Second, nopLogger{})
	f.uc.timeProvider = fixedTime{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	return f
}

func date(day int) types.CalendarDate {
	return types.NewCalendarDate(2025, 1, day)
}

func (f *fixture) request(checkIn, checkOut types.CalendarDate) *Request {
	return &Request{
		RoomID:   f.room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Source:   domain.SourceOnline,
		Guest: domain.Guest{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
			Adults:    2,
		},
		Payment: domain.Payment{Method: domain.PaymentOnline},
	}
}

// existing бронирование Twin Room на [2025-01-10, 2025-01-12]
func (f *fixture) existing() []*domain.Booking {
	return []*domain.Booking{{ID: 1, RoomID: f.room.ID, CheckIn: date(10), CheckOut: date(12)}}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, availability.CheckoutInclusive)

	f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return(f.existing(), nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Nights == 2 && b.TotalCost == 3000 && b.RoomName == "Twin Room"
	})).Return(func(_ context.Context, b *domain.Booking) *domain.Booking {
		b.ID = 42
		return b
	}, nil)
	f.metrics.On("IncBookingCreated", "online").Once()
	f.notifier.On("SendBookingConfirmation", mock.Anything, mock.MatchedBy(func(p mailrelay.BookingConfirmation) bool {
		return p.BookingID == 42 && p.TotalCost == "30.00" && p.CheckOutDate == "2025-01-15"
	})).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), f.request(date(13), date(15)))

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.Booking.ID)
	assert.True(t, resp.NotificationSent)
	f.bookings.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_ConflictIsRejectedInsideTransaction(t *testing.T) {
	f := newFixture(t, availability.CheckoutInclusive)

	f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return(f.existing(), nil)
	f.metrics.On("IncBookingConflict", "online").Once()

	_, err := f.uc.Execute(context.Background(), f.request(date(11), date(13)))

	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything)
}

func TestExecute_CheckoutDayPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  availability.CheckoutPolicy
		wantErr error
	}{
		{name: "inclusive rejects check-in on checkout day", policy: availability.CheckoutInclusive, wantErr: ErrRoomNotAvailable},
		{name: "exclusive accepts check-in on checkout day", policy: availability.CheckoutExclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.policy)

			f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
			f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return(f.existing(), nil)
			f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 2, Source: domain.SourceOnline}, nil).Maybe()
			f.metrics.On("IncBookingConflict", mock.Anything).Maybe()
			f.metrics.On("IncBookingCreated", mock.Anything).Maybe()
			f.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything).Return(nil).Maybe()

			_, err := f.uc.Execute(context.Background(), f.request(date(12), date(14)))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, availability.CheckoutInclusive)

	f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return([]*domain.Booking{}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 5, Source: domain.SourceOnline}, nil)
	f.metrics.On("IncBookingCreated", "online").Once()
	f.metrics.On("IncNotificationFailure", notificationKindConfirmation).Once()
	f.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything).Return(errors.New("relay down")).Once()

	resp, err := f.uc.Execute(context.Background(), f.request(date(10), date(12)))

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Booking.ID)
	assert.False(t, resp.NotificationSent)
	f.notifier.AssertNumberOfCalls(t, "SendBookingConfirmation", 1)
	f.metrics.AssertExpectations(t)
}

func TestExecute_StoreFailures(t *testing.T) {
	t.Run("read failure is not treated as empty calendar", func(t *testing.T) {
		f := newFixture(t, availability.CheckoutInclusive)
		f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
		f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return(nil, errors.New("connection refused"))

		_, err := f.uc.Execute(context.Background(), f.request(date(13), date(15)))

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("commit failure", func(t *testing.T) {
		f := newFixture(t, availability.CheckoutInclusive)
		f.tx.commitErr = errors.New("commit failed")
		f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
		f.bookings.On("ListByRoom", mock.Anything, f.room.ID).Return([]*domain.Booking{}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 9}, nil)

		_, err := f.uc.Execute(context.Background(), f.request(date(13), date(15)))

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.notifier.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything)
	})
}

func TestExecute_RoomChecks(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		wantErr error
	}{
		{
			name: "room not found",
			prepare: func(f *fixture) {
				f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(nil, roomRepo.ErrRoomNotFound)
			},
			wantErr: ErrRoomNotFound,
		},
		{
			name: "closed for maintenance",
			prepare: func(f *fixture) {
				f.room.Status = domain.RoomClosedMaintenance
				f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
			},
			wantErr: ErrRoomNotBookable,
		},
		{
			name: "too many guests",
			prepare: func(f *fixture) {
				f.room.Capacity = 1
				f.rooms.On("GetByID", mock.Anything, f.room.ID).Return(f.room, nil)
			},
			wantErr: ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, availability.CheckoutInclusive)
			tt.prepare(f)

			_, err := f.uc.Execute(context.Background(), f.request(date(13), date(15)))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "same day", modify: func(r *Request) { r.CheckOut = r.CheckIn }, wantErr: ErrInvalidRange},
		{name: "reversed", modify: func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, wantErr: ErrInvalidRange},
		{name: "past check-in", modify: func(r *Request) { r.CheckIn = types.NewCalendarDate(2024, 12, 30) }, wantErr: ErrDateInPast},
		{name: "too long", modify: func(r *Request) { r.CheckOut = r.CheckIn.AddDays(domain.MaxStayNights + 1) }, wantErr: ErrStayTooLong},
		{name: "invalid email", modify: func(r *Request) { r.Guest.Email = "anna" }, wantErr: ErrInvalidInput},
		{name: "no adults", modify: func(r *Request) { r.Guest.Adults = 0 }, wantErr: ErrInvalidInput},
		{name: "unknown payment", modify: func(r *Request) { r.Payment.Method = "barter" }, wantErr: ErrInvalidInput},
		{name: "unknown source", modify: func(r *Request) { r.Source = "fax" }, wantErr: ErrInvalidInput},
		{name: "no room", modify: func(r *Request) { r.RoomID = uuid.Nil }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, availability.CheckoutInclusive)
			req := f.request(date(13), date(15))
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls, "store must not be touched on invalid input")
		})
	}
}
