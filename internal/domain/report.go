package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportKind тип обращения
type ReportKind string

const (
	ReportComplaint ReportKind = "complaint" // жалоба гостя
	ReportStaff     ReportKind = "staff"     // служебный отчет персонала
)

// ReportStatus статус обращения
type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

// Report жалоба гостя или служебный отчет
type Report struct {
	ID            int64
	Kind          ReportKind
	Subject       string
	Message       string
	RoomID        *uuid.UUID
	BookingID     *int64
	ReporterName  string
	ReporterEmail *string
	CreatedBy     *int64
	Status        ReportStatus
	ResolvedAt    *time.Time
	ResolvedBy    *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsResolved возвращает true, если обращение закрыто
func (r *Report) IsResolved() bool {
	return r.Status == ReportResolved
}

// ReportsFilter фильтр списка обращений
type ReportsFilter struct {
	Kind   ReportKind
	Status *ReportStatus
}
