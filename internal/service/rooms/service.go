package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

// Service сервис для управления номерами отеля
type Service struct {
	roomRepo    RoomRepository
	bookingRepo BookingCounter
	txManager   TransactionManager
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса номеров
func NewService(
	roomRepo RoomRepository,
	bookingRepo BookingCounter,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create создает новый номер
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room name=%s", req.Name)

	// 1. Валидируем входные данные
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.RoomAvailable
	if req.Status != "" {
		parsed, ok := domain.ParseRoomStatus(req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
		}
		status = parsed
	}

	// 2. Создаем номер
	created, err := s.roomRepo.Create(ctx, req.ToDomainRoom(status))
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateName) {
			s.logger.Warn("Create: room name=%s already exists", req.Name)
			return nil, ErrRoomAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Create: successfully created room id=%s", created.ID)
	return models.FromDomainRoom(created), nil
}

// GetByID получает номер по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%s not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainRoom(room), nil
}

// List возвращает номера с опциональной фильтрацией по статусу и вместимости
func (s *Service) List(ctx context.Context, req *models.ListRoomsRequest) (*models.RoomListResponse, error) {
	filter := domain.RoomsFilter{MinCapacity: req.MinCapacity}

	if req.Status != nil {
		status, ok := domain.ParseRoomStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

// Update обновляет описательные поля номера
// Доступно только администратору. Цена уже созданных бронирований не меняется
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Update: updating room id=%s", id)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Room

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем номер с блокировкой
		room, err := s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. Применяем изменения
		req.ApplyToRoom(room)

		// 3. Сохраняем
		updated, err = s.roomRepo.Update(txCtx, room)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			s.logger.Warn("Update: room id=%s not found", id)
			return nil, ErrRoomNotFound
		case errors.Is(err, roomRepo.ErrDuplicateName):
			s.logger.Warn("Update: room name is already taken")
			return nil, ErrRoomAlreadyExists
		default:
			s.logger.Error("Update: repository error for room id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrStoreUnavailable, err)
		}
	}

	s.logger.Info("Update: successfully updated room id=%s", id)
	return models.FromDomainRoom(updated), nil
}

// UpdateStatus меняет статус номера
// Персонал закрывает номер на обслуживание или открывает его для бронирования
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: room id=%s to status=%s", id, req.Status)

	status, ok := domain.ParseRoomStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status %q", req.Status)
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if err := s.roomRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("UpdateStatus: room id=%s not found", id)
			return ErrRoomNotFound
		}
		s.logger.Error("UpdateStatus: repository error for room id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("UpdateStatus: room id=%s is now %s", id, status)
	return nil
}

// Delete удаляет номер
// Номер с активными бронированиями удалить нельзя
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting room id=%s", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.roomRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		count, err := s.bookingRepo.CountByRoom(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d bookings", ErrRoomInUse, count)
		}

		return s.roomRepo.Delete(txCtx, id)
	})

	if err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			s.logger.Warn("Delete: room id=%s not found", id)
			return ErrRoomNotFound
		case errors.Is(err, ErrRoomInUse), errors.Is(err, roomRepo.ErrRoomInUse):
			s.logger.Warn("Delete: room id=%s has bookings", id)
			return ErrRoomInUse
		default:
			s.logger.Error("Delete: repository error for room id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
		}
	}

	s.logger.Info("Delete: successfully deleted room id=%s", id)
	return nil
}
