package booking_flow

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
	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	flowStore "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/flow"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

type mockSearch struct{ mock.Mock }

func (m *mockSearch) Execute(ctx context.Context, req *search_available_rooms.Request) (*search_available_rooms.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search_available_rooms.Response), args.Error(1)
}

type mockAvailability struct{ mock.Mock }

func (m *mockAvailability) Execute(ctx context.Context, req *get_room_availability.Request) (*get_room_availability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*get_room_availability.Response), args.Error(1)
}

type mockCreator struct{ mock.Mock }

func (m *mockCreator) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*create_booking.Response), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	checkIn  = types.NewCalendarDate(2025, 1, 10)
	checkOut = types.NewCalendarDate(2025, 1, 12)
	twinRoom = &domain.Room{ID: uuid.New(), Name: "Twin Room", RatePerDay: 150000, Capacity: 2, Status: domain.RoomAvailable}
	quote    = availability.StayQuote{Nights: 2, TotalCost: 300000}
	guest    = domain.Guest{FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com", Adults: 2}
)

type fixture struct {
	uc           *UseCase
	search       *mockSearch
	availability *mockAvailability
	creator      *mockCreator
}

func newFixture() *fixture {
	f := &fixture{
		search:       new(mockSearch),
		availability: new(mockAvailability),
		creator:      new(mockCreator),
	}
	f.uc = NewUseCase(flowStore.NewStore(time.Hour), f.search, f.availability, f.creator, nopLogger{})
	f.uc.timeProvider = fixedTime{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	return f
}

func (f *fixture) expectSearch() {
	f.search.On("Execute", mock.Anything, &search_available_rooms.Request{CheckIn: checkIn, CheckOut: checkOut}).
		Return(&search_available_rooms.Response{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Nights:   2,
			Rooms:    []search_available_rooms.OfferedRoom{{Room: twinRoom, Quote: quote}},
		}, nil)
}

func (f *fixture) expectBookable() {
	f.availability.On("Execute", mock.Anything, mock.MatchedBy(func(r *get_room_availability.Request) bool {
		return r.RoomID == twinRoom.ID && *r.CheckIn == checkIn && *r.CheckOut == checkOut
	})).Return(&get_room_availability.Response{
		Room:      twinRoom,
		Candidate: &get_room_availability.Candidate{CheckIn: checkIn, CheckOut: checkOut, Quote: quote, Bookable: true},
	}, nil)
}

// toReview проводит сценарий до этапа подтверждения
func (f *fixture) toReview(t *testing.T) flow.Context {
	t.Helper()
	ctx := context.Background()

	c, err := f.uc.Start(ctx)
	require.NoError(t, err)

	f.expectSearch()
	dates, err := f.uc.SubmitDates(ctx, &SubmitDatesRequest{Target: Target{Token: c.ID()}, CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	require.Len(t, dates.Rooms, 1)

	f.expectBookable()
	_, err = f.uc.SelectRoom(ctx, &SelectRoomRequest{Target: Target{Token: c.ID()}, RoomID: twinRoom.ID})
	require.NoError(t, err)

	c, err = f.uc.SubmitGuest(ctx, &SubmitGuestRequest{Target: Target{Token: c.ID()}, Guest: guest})
	require.NoError(t, err)
	require.Equal(t, flow.StageReviewingConfirmation, c.Stage())
	return c
}

func createdResponse(id int64) *create_booking.Response {
	return &create_booking.Response{
		Booking:          &domain.Booking{ID: id, RoomID: twinRoom.ID, CheckIn: checkIn, CheckOut: checkOut, Source: domain.SourceOnline},
		NotificationSent: true,
	}
}

func TestBookingFlow_HappyPath(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	room, ok := c.Room()
	require.True(t, ok)
	assert.Equal(t, "Twin Room", room.RoomName)
	assert.Equal(t, quote, room.Quote)

	payment, _ := c.Payment()
	assert.Equal(t, domain.PaymentOnline, payment.Method)

	f.creator.On("Execute", mock.Anything, mock.MatchedBy(func(r *create_booking.Request) bool {
		return r.RoomID == twinRoom.ID && r.Source == domain.SourceOnline && r.CheckIn == checkIn &&
			r.CheckOut == checkOut && r.Guest == guest && r.CreatedBy == nil
	})).Return(createdResponse(42), nil).Once()

	resp, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.True(t, resp.NotificationSent)
	assert.False(t, resp.AlreadySubmitted)
	assert.True(t, resp.Flow.IsSubmitted())
}

func TestBookingFlow_DuplicateConfirmDoesNotWriteTwice(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)
	f.creator.On("Execute", mock.Anything, mock.Anything).Return(createdResponse(42), nil).Once()

	_, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	require.NoError(t, err)

	resp, err := f.uc.Confirm(context.Background(), Target{Token: c.ID(), Revision: ptr.Ptr(c.Revision())})
	require.NoError(t, err)
	assert.True(t, resp.AlreadySubmitted)
	assert.Equal(t, int64(42), resp.BookingID)
	f.creator.AssertNumberOfCalls(t, "Execute", 1)
}

func TestBookingFlow_ConfirmWhileSubmitting(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.creator.On("Execute", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(createdResponse(42), nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
		done <- err
	}()

	<-started
	_, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	f.creator.AssertNumberOfCalls(t, "Execute", 1)
}

func TestBookingFlow_ConfirmStoreFailureIsRetryable(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	f.creator.On("Execute", mock.Anything, mock.Anything).
		Return(nil, create_booking.ErrStoreUnavailable).Once()

	_, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	current, err := f.uc.Get(context.Background(), c.ID())
	require.NoError(t, err)
	assert.Equal(t, flow.StageReviewingConfirmation, current.Stage())

	f.creator.On("Execute", mock.Anything, mock.Anything).Return(createdResponse(43), nil).Once()
	resp, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(43), resp.BookingID)
}

func TestBookingFlow_ConfirmConflict(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	f.creator.On("Execute", mock.Anything, mock.Anything).
		Return(nil, create_booking.ErrRoomNotAvailable).Once()

	_, err := f.uc.Confirm(context.Background(), Target{Token: c.ID()})
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestBookingFlow_SubmitDatesInvalidRange(t *testing.T) {
	f := newFixture()
	c, err := f.uc.Start(context.Background())
	require.NoError(t, err)

	_, err = f.uc.SubmitDates(context.Background(), &SubmitDatesRequest{
		Target:   Target{Token: c.ID()},
		CheckIn:  checkIn,
		CheckOut: checkIn,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	current, err := f.uc.Get(context.Background(), c.ID())
	require.NoError(t, err)
	assert.Equal(t, flow.StageSelectingDates, current.Stage())
	f.search.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestBookingFlow_SubmitDatesStoreFailureKeepsStage(t *testing.T) {
	f := newFixture()
	c, err := f.uc.Start(context.Background())
	require.NoError(t, err)

	f.search.On("Execute", mock.Anything, mock.Anything).
		Return(nil, search_available_rooms.ErrStoreUnavailable)

	_, err = f.uc.SubmitDates(context.Background(), &SubmitDatesRequest{Target: Target{Token: c.ID()}, CheckIn: checkIn, CheckOut: checkOut})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	current, err := f.uc.Get(context.Background(), c.ID())
	require.NoError(t, err)
	assert.Equal(t, flow.StageSelectingDates, current.Stage())
}

func TestBookingFlow_SelectRoomConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.uc.Start(ctx)
	require.NoError(t, err)

	f.expectSearch()
	_, err = f.uc.SubmitDates(ctx, &SubmitDatesRequest{Target: Target{Token: c.ID()}, CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)

	conflict := checkIn.AddDays(1)
	f.availability.On("Execute", mock.Anything, mock.Anything).Return(&get_room_availability.Response{
		Room:      twinRoom,
		Candidate: &get_room_availability.Candidate{Quote: quote, ConflictDate: &conflict},
	}, nil)

	_, err = f.uc.SelectRoom(ctx, &SelectRoomRequest{Target: Target{Token: c.ID()}, RoomID: twinRoom.ID})
	assert.ErrorIs(t, err, ErrRoomNotAvailable)

	current, err := f.uc.Get(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, flow.StageSelectingRoom, current.Stage())
}

func TestBookingFlow_StageGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.uc.Start(ctx)
	require.NoError(t, err)

	_, err = f.uc.SubmitGuest(ctx, &SubmitGuestRequest{Target: Target{Token: c.ID()}, Guest: guest})
	assert.ErrorIs(t, err, ErrWrongStage)

	_, err = f.uc.SelectRoom(ctx, &SelectRoomRequest{Target: Target{Token: c.ID()}, RoomID: twinRoom.ID})
	assert.ErrorIs(t, err, ErrWrongStage)

	_, err = f.uc.Back(ctx, Target{Token: c.ID()})
	assert.ErrorIs(t, err, ErrWrongStage)

	_, err = f.uc.Confirm(ctx, Target{Token: c.ID()})
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestBookingFlow_BackKeepsData(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	back, err := f.uc.Back(context.Background(), Target{Token: c.ID(), Revision: ptr.Ptr(c.Revision())})
	require.NoError(t, err)
	assert.Equal(t, flow.StageEnteringGuestInfo, back.Stage())

	got, ok := back.Guest()
	require.True(t, ok)
	assert.Equal(t, guest, got)
}

func TestBookingFlow_StaleRevision(t *testing.T) {
	f := newFixture()
	c := f.toReview(t)

	_, err := f.uc.Back(context.Background(), Target{Token: c.ID(), Revision: ptr.Ptr(c.Revision() - 1)})
	assert.ErrorIs(t, err, ErrStaleFlow)
}

func TestBookingFlow_ResetIssuesNewToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	old, err := f.uc.Start(ctx)
	require.NoError(t, err)

	fresh, err := f.uc.Reset(ctx, old.ID())
	require.NoError(t, err)
	assert.NotEqual(t, old.ID(), fresh.ID())
	assert.Equal(t, flow.StageSelectingDates, fresh.Stage())

	_, err = f.uc.Get(ctx, old.ID())
	assert.ErrorIs(t, err, ErrFlowNotFound)

	f.search.On("Execute", mock.Anything, mock.Anything).Return(&search_available_rooms.Response{}, nil)
	_, err = f.uc.SubmitDates(ctx, &SubmitDatesRequest{Target: Target{Token: old.ID()}, CheckIn: checkIn, CheckOut: checkOut})
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestBookingFlow_SubmitGuestValidation(t *testing.T) {
	f := newFixture()
	bad := guest
	bad.Email = "not-an-email"

	_, err := f.uc.SubmitGuest(context.Background(), &SubmitGuestRequest{Target: Target{Token: uuid.New()}, Guest: bad})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
