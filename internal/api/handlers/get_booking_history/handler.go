package get_booking_history

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/history
// Query params: roomId, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /bookings/history - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.PageRequest{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("roomId"); s != "" {
		roomID, err := uuid.Parse(s)
		if err != nil {
			h.logger.Warn("GET /bookings/history - Invalid room ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.RoomID = &roomID
	}

	result, err := h.service.ListHistory(r.Context(), req)
	if err != nil {
		// Любая ошибка сервиса здесь означает недоступность хранилища
		h.logger.Error("GET /bookings/history - Failed to list history: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /bookings/history - History retrieved: count=%d", len(result.Records))
	handlers.RespondJSON(w, http.StatusOK, result)
}
