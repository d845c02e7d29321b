package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модели

// CreateReportRequest запрос на создание жалобы или служебного отчета
type CreateReportRequest struct {
	Kind          string     `json:"-"`
	Subject       string     `json:"subject" validate:"required,max=200"`
	Message       string     `json:"message" validate:"required,max=5000"`
	RoomID        *uuid.UUID `json:"roomId,omitempty"`
	BookingID     *int64     `json:"bookingId,omitempty" validate:"omitempty,gt=0"`
	ReporterName  string     `json:"reporterName" validate:"required,max=200"`
	ReporterEmail *string    `json:"reporterEmail,omitempty" validate:"omitempty,email"`
	CreatedBy     *int64     `json:"-"`
}

// ListReportsRequest фильтр списка обращений
type ListReportsRequest struct {
	Kind   string
	Status *string
}

// ResolveReportRequest запрос на закрытие обращения
type ResolveReportRequest struct {
	Kind       string
	ID         int64
	ResolvedBy *int64
}

// Response модели

// ReportResponse ответ с данными обращения
type ReportResponse struct {
	ID            int64      `json:"id"`
	Kind          string     `json:"kind"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	RoomID        *uuid.UUID `json:"roomId,omitempty"`
	BookingID     *int64     `json:"bookingId,omitempty"`
	ReporterName  string     `json:"reporterName"`
	ReporterEmail *string    `json:"reporterEmail,omitempty"`
	CreatedBy     *int64     `json:"createdBy,omitempty"`
	Status        string     `json:"status"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy    *int64     `json:"resolvedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ReportListResponse ответ со списком обращений
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
}

// ParseKind проверяет тип обращения
func ParseKind(kind string) (domain.ReportKind, bool) {
	switch domain.ReportKind(kind) {
	case domain.ReportComplaint, domain.ReportStaff:
		return domain.ReportKind(kind), true
	default:
		return "", false
	}
}

// ParseStatus проверяет статус обращения
func ParseStatus(status string) (domain.ReportStatus, bool) {
	switch domain.ReportStatus(status) {
	case domain.ReportOpen, domain.ReportResolved:
		return domain.ReportStatus(status), true
	default:
		return "", false
	}
}

// Методы конвертации

// FromDomainReport конвертирует domain модель в DTO
func FromDomainReport(r *domain.Report) *ReportResponse {
	if r == nil {
		return nil
	}

	return &ReportResponse{
		ID:            r.ID,
		Kind:          string(r.Kind),
		Subject:       r.Subject,
		Message:       r.Message,
		RoomID:        r.RoomID,
		BookingID:     r.BookingID,
		ReporterName:  r.ReporterName,
		ReporterEmail: r.ReporterEmail,
		CreatedBy:     r.CreatedBy,
		Status:        string(r.Status),
		ResolvedAt:    r.ResolvedAt,
		ResolvedBy:    r.ResolvedBy,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainReportList конвертирует список domain моделей в DTO
func FromDomainReportList(reports []*domain.Report) *ReportListResponse {
	resp := &ReportListResponse{
		Reports: make([]ReportResponse, 0, len(reports)),
	}

	for _, r := range reports {
		resp.Reports = append(resp.Reports, *FromDomainReport(r))
	}

	return resp
}
