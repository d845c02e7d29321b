package get_room_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	getRoomAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
)

const (
	msgInvalidParams = "некорректный ID номера или формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "номер не найден"
)

type Handler struct {
	useCase GetRoomAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: checkIn, checkOut (опционально, YYYY-MM-DD, только вместе)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomIDStr := mux.Vars(r)["roomId"]

	useCaseReq, err := ToUseCaseRequest(roomIDStr, r.URL.Query().Get("checkIn"), r.URL.Query().Get("checkOut"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%s", roomIDStr)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getRoomAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /rooms/{id}/availability - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to get availability: room_id=%s, error=%v", roomIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Availability retrieved: room_id=%s, blocked=%d",
		roomIDStr, len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
