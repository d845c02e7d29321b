package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) List(ctx context.Context, filter domain.RoomsFilter) ([]*domain.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RoomStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *mockRoomRepo, *mockCounter) {
	rooms := new(mockRoomRepo)
	counter := new(mockCounter)
	return NewService(rooms, counter, passTx{}, nopLogger{}), rooms, counter
}

func TestService_Create(t *testing.T) {
	svc, rooms, _ := newService()

	rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Name == "Twin Room" && r.Status == domain.RoomAvailable && r.RatePerDay == 150000
	})).Return(&domain.Room{ID: uuid.New(), Name: "Twin Room", RatePerDay: 150000, Capacity: 2, Status: domain.RoomAvailable}, nil)

	resp, err := svc.Create(context.Background(), &models.CreateRoomRequest{Name: "Twin Room", RatePerDay: 150000, Capacity: 2})

	require.NoError(t, err)
	assert.Equal(t, "1500.00", resp.RatePerDayFormatted)
	assert.Equal(t, "Available", resp.Status)
}

func TestService_CreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateRoomRequest
		repoErr error
		wantErr error
	}{
		{name: "empty name", req: &models.CreateRoomRequest{Capacity: 2}, wantErr: ErrInvalidInput},
		{name: "zero capacity", req: &models.CreateRoomRequest{Name: "Suite"}, wantErr: ErrInvalidInput},
		{name: "unknown status", req: &models.CreateRoomRequest{Name: "Suite", Capacity: 2, Status: "Broken"}, wantErr: ErrInvalidInput},
		{name: "duplicate", req: &models.CreateRoomRequest{Name: "Suite", Capacity: 2}, repoErr: roomRepo.ErrDuplicateName, wantErr: ErrRoomAlreadyExists},
		{name: "store down", req: &models.CreateRoomRequest{Name: "Suite", Capacity: 2}, repoErr: errors.New("conn reset"), wantErr: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rooms, _ := newService()
			if tt.repoErr != nil {
				rooms.On("Create", mock.Anything, mock.Anything).Return(nil, tt.repoErr)
			}

			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_UpdateAppliesOnlyGivenFields(t *testing.T) {
	svc, rooms, _ := newService()
	id := uuid.New()
	existing := &domain.Room{ID: id, Name: "Twin Room", RatePerDay: 150000, Capacity: 2, Status: domain.RoomAvailable}

	rooms.On("GetByID", mock.Anything, id).Return(existing, nil)
	rooms.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Name == "Twin Room" && r.RatePerDay == 170000 && r.Capacity == 2
	})).Return(existing, nil)

	resp, err := svc.Update(context.Background(), id, &models.UpdateRoomRequest{RatePerDay: ptr.Ptr(int64(170000))})

	require.NoError(t, err)
	assert.Equal(t, int64(170000), resp.RatePerDay)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, rooms, _ := newService()
	id := uuid.New()
	rooms.On("UpdateStatus", mock.Anything, id, domain.RoomClosedMaintenance).Return(nil)

	require.NoError(t, svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "Closed for Maintenance"}))
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "closed"}), ErrInvalidInput)
}

func TestService_DeleteRefusedWhileBooked(t *testing.T) {
	svc, rooms, counter := newService()
	id := uuid.New()
	rooms.On("GetByID", mock.Anything, id).Return(&domain.Room{ID: id}, nil)
	counter.On("CountByRoom", mock.Anything, id).Return(2, nil)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrRoomInUse)
	rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	svc, rooms, counter := newService()
	id := uuid.New()
	rooms.On("GetByID", mock.Anything, id).Return(&domain.Room{ID: id}, nil)
	counter.On("CountByRoom", mock.Anything, id).Return(0, nil)
	rooms.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestService_ListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.List(context.Background(), &models.ListRoomsRequest{Status: ptr.Ptr("Nope")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
