package decline_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	declineBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/decline_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReason      = "укажите причину отклонения (до 500 символов)"
	msgNotFound           = "бронирование не найдено"
	msgNotOnline          = "отклонить можно только онлайн-бронирование"
)

type Handler struct {
	useCase DeclineBookingUseCase
	logger  Logger
}

func NewHandler(useCase DeclineBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(mux.Vars(r), "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/decline - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DeclineBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var staffID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		staffID = &id
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, staffID))
	if err != nil {
		switch {
		case errors.Is(err, declineBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/decline - Invalid reason: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, declineBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/decline - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, declineBooking.ErrNotOnlineBooking):
			h.logger.Warn("POST /bookings/{id}/decline - Not an online booking: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotOnline)

		case errors.Is(err, declineBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/decline - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/decline - Failed to decline: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/decline - Booking declined: booking_id=%d, notification_sent=%t",
		bookingID, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
