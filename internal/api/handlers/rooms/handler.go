package rooms

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	roomService "github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const (
	msgInvalidRoomID      = "некорректный ID номера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные номера"
	msgRoomNotFound       = "номер не найден"
	msgRoomAlreadyExists  = "номер с таким названием уже существует"
	msgRoomInUse          = "у номера есть бронирования"
)

// Handler каталог номеров: чтение публичное, изменения только для персонала
type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/rooms
// Query params: status, minCapacity (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rooms - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /rooms", err)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/rooms/{roomId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r, "GET /rooms/{id}")
	if !ok {
		return
	}

	room, err := h.service.GetByID(r.Context(), roomID)
	if err != nil {
		h.respondError(w, "GET /rooms/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, room)
}

// Create POST /api/v1/rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /rooms", err)
		return
	}

	h.logger.Info("POST /rooms - Room created: room_id=%s", room.ID)
	handlers.RespondJSON(w, http.StatusCreated, room)
}

// Update PUT /api/v1/rooms/{roomId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r, "PUT /rooms/{id}")
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Update(r.Context(), roomID, &req)
	if err != nil {
		h.respondError(w, "PUT /rooms/{id}", err)
		return
	}

	h.logger.Info("PUT /rooms/{id} - Room updated: room_id=%s", roomID)
	handlers.RespondJSON(w, http.StatusOK, room)
}

// UpdateStatus PATCH /api/v1/rooms/{roomId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r, "PATCH /rooms/{id}/status")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), roomID, &req); err != nil {
		h.respondError(w, "PATCH /rooms/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /rooms/{id}/status - Room status changed: room_id=%s, status=%s", roomID, req.Status)
	w.WriteHeader(http.StatusNoContent)
}

// Delete DELETE /api/v1/rooms/{roomId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r, "DELETE /rooms/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), roomID); err != nil {
		h.respondError(w, "DELETE /rooms/{id}", err)
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted: room_id=%s", roomID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) roomID(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(mux.Vars(r)["roomId"])
	if err != nil {
		h.logger.Warn("%s - Invalid room ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return uuid.Nil, false
	}
	return roomID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, roomService.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found", route)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, roomService.ErrRoomAlreadyExists):
		h.logger.Warn("%s - Duplicate room name", route)
		handlers.RespondConflict(w, msgRoomAlreadyExists)

	case errors.Is(err, roomService.ErrRoomInUse):
		h.logger.Warn("%s - Room in use: %v", route, err)
		handlers.RespondConflict(w, msgRoomInUse)

	case errors.Is(err, roomService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, roomService.ErrStoreUnavailable):
		h.logger.Error("%s - Store unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
