package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями со стороны персонала
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией
//
// Примеры использования:
// - Все бронирования номера: указать RoomID
// - Бронирования, пересекающиеся с периодом: From и To
// - Только онлайн-бронирования: Source = "online"
// - Поиск гостя: Email
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.RoomID != nil {
		logMsg += fmt.Sprintf(", room=%s", req.RoomID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From, req.To)
	}
	if req.Source != nil {
		logMsg += fmt.Sprintf(", source=%s", *req.Source)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, filter.Limit, filter.Offset), nil
}

// Delete удаляет бронирование без переноса в историю
// Доступно только администратору, даты сразу освобождаются
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// ListHistory возвращает бронирования после выезда гостей
func (s *Service) ListHistory(ctx context.Context, req *models.PageRequest) (*models.HistoryListResponse, error) {
	limit := models.NormalizeLimit(req.Limit)
	offset := max(req.Offset, 0)

	records, err := s.bookingRepo.ListHistory(ctx, req.RoomID, limit, offset)
	if err != nil {
		s.logger.Error("ListHistory: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHistory - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListHistory: fetched %d records", len(records))
	return models.FromDomainHistory(records), nil
}

// ListDeclined возвращает отклоненные онлайн-бронирования
func (s *Service) ListDeclined(ctx context.Context, req *models.PageRequest) (*models.DeclinedListResponse, error) {
	limit := models.NormalizeLimit(req.Limit)
	offset := max(req.Offset, 0)

	declined, err := s.bookingRepo.ListDeclined(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ListDeclined: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDeclined - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListDeclined: fetched %d records", len(declined))
	return models.FromDomainDeclinedList(declined), nil
}
