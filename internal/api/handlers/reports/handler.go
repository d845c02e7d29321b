package reports

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	reportService "github.com/m04kA/SMC-HotelBookingService/internal/service/reports"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/reports/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReportID    = "некорректный ID обращения"
	msgInvalidInput       = "некорректные данные обращения"
	msgReportNotFound     = "обращение не найдено"
	msgAlreadyResolved    = "обращение уже закрыто"
)

// Handler жалобы гостей и служебные отчеты
type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateComplaint POST /api/v1/complaints
// Публичный endpoint - жалобу может оставить любой гость
func (h *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "POST /complaints", domain.ReportComplaint, nil)
}

// CreateStaffReport POST /api/v1/reports
func (h *Handler) CreateStaffReport(w http.ResponseWriter, r *http.Request) {
	var staffID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		staffID = &id
	}
	h.create(w, r, "POST /reports", domain.ReportStaff, staffID)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, route string, kind domain.ReportKind, createdBy *int64) {
	var req models.CreateReportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Kind = string(kind)
	req.CreatedBy = createdBy

	report, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Report created: id=%d, kind=%s", route, report.ID, report.Kind)
	handlers.RespondJSON(w, http.StatusCreated, report)
}

// List GET /api/v1/reports/{kind}
// Query params: status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListReportsRequest{Kind: mux.Vars(r)["kind"]}
	if s := r.URL.Query().Get("status"); s != "" {
		req.Status = &s
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /reports/{kind}", err)
		return
	}

	h.logger.Info("GET /reports/{kind} - Reports retrieved: kind=%s, count=%d", req.Kind, len(result.Reports))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Resolve POST /api/v1/reports/{kind}/{reportId}/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	const route = "POST /reports/{kind}/{id}/resolve"

	vars := mux.Vars(r)
	reportID, err := handlers.PathInt64(vars, "reportId")
	if err != nil {
		h.logger.Warn("%s - Invalid report ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReportID)
		return
	}

	req := &models.ResolveReportRequest{Kind: vars["kind"], ID: reportID}
	if id, ok := middleware.GetUserID(r.Context()); ok {
		req.ResolvedBy = &id
	}

	report, err := h.service.Resolve(r.Context(), req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Report resolved: id=%d", route, reportID)
	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reportService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, reportService.ErrReportNotFound):
		handlers.RespondNotFound(w, msgReportNotFound)

	case errors.Is(err, reportService.ErrAlreadyResolved):
		handlers.RespondConflict(w, msgAlreadyResolved)

	case errors.Is(err, reportService.ErrStoreUnavailable):
		h.logger.Error("%s - Store unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
