package get_declined_bookings

import (
	"net/http"

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

// Handle GET /api/v1/bookings/declined
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /bookings/declined - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListDeclined(r.Context(), &models.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		h.logger.Error("GET /bookings/declined - Failed to list declined bookings: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /bookings/declined - Declined bookings retrieved: count=%d", len(result.Declined))
	handlers.RespondJSON(w, http.StatusOK, result)
}
