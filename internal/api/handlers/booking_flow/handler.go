package booking_flow

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/search_rooms"
	bookingFlow "github.com/m04kA/SMC-HotelBookingService/internal/usecase/booking_flow"
)

const (
	msgInvalidToken       = "некорректный токен сценария или ревизия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректный ID номера или формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "проверьте введенные данные"
	msgInvalidRange       = "дата выезда должна быть позже даты заезда"
	msgFlowNotFound       = "сценарий бронирования не найден или истек"
	msgWrongStage         = "действие недоступно на текущем шаге"
	msgStaleFlow          = "данные бронирования изменились, обновите страницу"
	msgSubmitInProgress   = "бронирование уже отправляется"
	msgRoomNotFound       = "номер не найден"
	msgRoomNotAvailable   = "номер занят на выбранные даты"
)

// Handler онлайн-сценарий бронирования гостем
type Handler struct {
	useCase BookingFlowUseCase
	logger  Logger
}

func NewHandler(useCase BookingFlowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/flows
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	c, err := h.useCase.Start(r.Context())
	if err != nil {
		h.respondError(w, "POST /flows", err)
		return
	}

	h.logger.Info("POST /flows - Flow started: token=%s", c.ID())
	handlers.RespondJSON(w, http.StatusCreated, FromFlow(c))
}

// Get GET /api/v1/flows/{token}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	target, ok := h.target(w, r, "GET /flows/{token}")
	if !ok {
		return
	}

	c, err := h.useCase.Get(r.Context(), target.Token)
	if err != nil {
		h.respondError(w, "GET /flows/{token}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(c))
}

// SubmitDates POST /api/v1/flows/{token}/dates
func (h *Handler) SubmitDates(w http.ResponseWriter, r *http.Request) {
	const route = "POST /flows/{token}/dates"

	target, ok := h.target(w, r, route)
	if !ok {
		return
	}

	var req SubmitDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(target)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.SubmitDates(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Dates accepted: token=%s, rooms=%d", route, target.Token, len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, &SubmitDatesResponse{
		Flow:  FromFlow(result.Flow),
		Rooms: search_rooms.FromOfferedRooms(result.Rooms),
	})
}

// SelectRoom POST /api/v1/flows/{token}/room
func (h *Handler) SelectRoom(w http.ResponseWriter, r *http.Request) {
	const route = "POST /flows/{token}/room"

	target, ok := h.target(w, r, route)
	if !ok {
		return
	}

	var req SelectRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(target)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	c, err := h.useCase.SelectRoom(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(c))
}

// SubmitGuest POST /api/v1/flows/{token}/guest
func (h *Handler) SubmitGuest(w http.ResponseWriter, r *http.Request) {
	const route = "POST /flows/{token}/guest"

	target, ok := h.target(w, r, route)
	if !ok {
		return
	}

	var req SubmitGuestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	c, err := h.useCase.SubmitGuest(r.Context(), req.ToUseCaseRequest(target))
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(c))
}

// Back POST /api/v1/flows/{token}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	target, ok := h.target(w, r, "POST /flows/{token}/back")
	if !ok {
		return
	}

	c, err := h.useCase.Back(r.Context(), target)
	if err != nil {
		h.respondError(w, "POST /flows/{token}/back", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(c))
}

// Confirm POST /api/v1/flows/{token}/confirm
// Повторный вызов для отправленного сценария возвращает то же бронирование со статусом 200
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	const route = "POST /flows/{token}/confirm"

	target, ok := h.target(w, r, route)
	if !ok {
		return
	}

	result, err := h.useCase.Confirm(r.Context(), target)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadySubmitted {
		status = http.StatusOK
	}

	h.logger.Info("%s - Flow submitted: token=%s, booking_id=%d, repeated=%t",
		route, target.Token, result.BookingID, result.AlreadySubmitted)
	handlers.RespondJSON(w, status, FromConfirmResponse(result))
}

// Reset POST /api/v1/flows/{token}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	target, ok := h.target(w, r, "POST /flows/{token}/reset")
	if !ok {
		return
	}

	c, err := h.useCase.Reset(r.Context(), target.Token)
	if err != nil {
		h.respondError(w, "POST /flows/{token}/reset", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromFlow(c))
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request, route string) (bookingFlow.Target, bool) {
	target, err := ParseTarget(r)
	if err != nil {
		h.logger.Warn("%s - Invalid target: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return bookingFlow.Target{}, false
	}
	return target, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookingFlow.ErrFlowNotFound):
		h.logger.Warn("%s - Flow not found", route)
		handlers.RespondNotFound(w, msgFlowNotFound)

	case errors.Is(err, bookingFlow.ErrRoomNotFound):
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, bookingFlow.ErrInvalidRange):
		handlers.RespondBadRequest(w, msgInvalidRange)

	case errors.Is(err, bookingFlow.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, bookingFlow.ErrWrongStage):
		h.logger.Warn("%s - Wrong stage: %v", route, err)
		handlers.RespondConflict(w, msgWrongStage)

	case errors.Is(err, bookingFlow.ErrStaleFlow):
		h.logger.Warn("%s - Stale flow: %v", route, err)
		handlers.RespondConflict(w, msgStaleFlow)

	case errors.Is(err, bookingFlow.ErrSubmitInProgress):
		handlers.RespondConflict(w, msgSubmitInProgress)

	case errors.Is(err, bookingFlow.ErrRoomNotAvailable):
		h.logger.Warn("%s - Room not available: %v", route, err)
		handlers.RespondConflict(w, msgRoomNotAvailable)

	case errors.Is(err, bookingFlow.ErrStoreUnavailable):
		h.logger.Error("%s - Store unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
