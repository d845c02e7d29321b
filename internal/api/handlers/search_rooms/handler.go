package search_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	searchRooms "github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
)

const (
	msgInvalidParams = "некорректные параметры поиска, даты в формате YYYY-MM-DD"
	msgInvalidRange  = "дата выезда должна быть позже даты заезда"
)

type Handler struct {
	useCase SearchRoomsUseCase
	logger  Logger
}

func NewHandler(useCase SearchRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/search
// Query params: checkIn, checkOut (обязательные), guests (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(q.Get("checkIn"), q.Get("checkOut"), q.Get("guests"))
	if err != nil {
		h.logger.Warn("GET /rooms/search - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchRooms.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, searchRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, searchRooms.ErrStoreUnavailable):
			h.logger.Error("GET /rooms/search - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /rooms/search - Failed to search rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/search - Found %d rooms for %s - %s",
		len(result.Rooms), result.CheckIn, result.CheckOut)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
