package booking_flow

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

var validate = validator.New()

func validateDates(req *SubmitDatesRequest, now time.Time) error {
	if req.CheckIn.Before(types.DateOf(now)) {
		return fmt.Errorf("%w: check-in %s is in the past", ErrInvalidInput, req.CheckIn)
	}
	if req.Guests < 0 {
		return fmt.Errorf("%w: guests must be non-negative", ErrInvalidInput)
	}
	return nil
}

func validateGuest(req *SubmitGuestRequest) error {
	if err := validate.Struct(req.Guest); err != nil {
		return fmt.Errorf("%w: guest: %v", ErrInvalidInput, err)
	}
	if err := validate.Struct(req.Payment); err != nil {
		return fmt.Errorf("%w: payment: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
