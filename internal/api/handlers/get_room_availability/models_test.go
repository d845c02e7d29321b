package get_room_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

const roomID = "6f1c1a52-3f0e-4c6b-9a53-0d3f5b1f7a10"

func TestToUseCaseRequest(t *testing.T) {
	req, err := ToUseCaseRequest(roomID, "", "")
	require.NoError(t, err)
	assert.Nil(t, req.CheckIn)

	req, err = ToUseCaseRequest(roomID, "2025-03-01", "2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, types.NewCalendarDate(2025, 3, 4), *req.CheckOut)

	_, err = ToUseCaseRequest(roomID, "2025-03-01", "")
	assert.ErrorIs(t, err, errHalfRange)

	_, err = ToUseCaseRequest("room-1", "", "")
	assert.Error(t, err)
}

func TestFromUseCaseResponse(t *testing.T) {
	conflict := types.NewCalendarDate(2025, 3, 2)
	resp := FromUseCaseResponse(&getRoomAvailability.Response{
		Room:   &domain.Room{Name: "Twin", RatePerDay: 150000},
		Policy: availability.CheckoutInclusive,
		Candidate: &getRoomAvailability.Candidate{
			Quote:        availability.StayQuote{Nights: 3, TotalCost: 450000},
			ConflictDate: &conflict,
		},
	})

	assert.Equal(t, "inclusive", resp.CheckoutPolicy)
	assert.NotNil(t, resp.BlockedDates)
	assert.Equal(t, "4500.00", resp.Candidate.TotalCost)
	assert.False(t, resp.Candidate.Bookable)
	assert.Equal(t, conflict, *resp.Candidate.ConflictDate)
}
