package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
)

var (
	// ErrFlowNotFound возвращается, когда сценарий не найден или истек
	ErrFlowNotFound = errors.New("flow.store: flow not found")

	// ErrStaleRevision возвращается, когда сценарий изменился с момента чтения
	ErrStaleRevision = errors.New("flow.store: stale flow revision")

	// ErrSubmitInProgress возвращается при повторном подтверждении, пока первое не завершилось
	ErrSubmitInProgress = errors.New("flow.store: submit already in progress")

	// ErrDuplicateFlow возвращается при создании сценария с существующим ID
	ErrDuplicateFlow = errors.New("flow.store: flow already exists")
)

type entry struct {
	ctx        flow.Context
	submitting bool
	expiresAt  time.Time
}

// Store хранилище сценариев бронирования в памяти процесса
// Каждый сценарий принадлежит одному гостю, общих изменяемых данных между сценариями нет
type Store struct {
	mu    sync.Mutex
	flows map[uuid.UUID]*entry
	ttl   time.Duration
	now   func() time.Time
}

// NewStore создает хранилище с временем жизни сценария ttl
func NewStore(ttl time.Duration) *Store {
	return &Store{
		flows: make(map[uuid.UUID]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create сохраняет новый сценарий
func (s *Store) Create(_ context.Context, c flow.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.flows[c.ID()]; ok && !s.expired(e) {
		return ErrDuplicateFlow
	}

	s.flows[c.ID()] = &entry{ctx: c, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Get возвращает текущее состояние сценария
func (s *Store) Get(_ context.Context, id uuid.UUID) (flow.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return flow.Context{}, err
	}
	return e.ctx, nil
}

// Replace заменяет состояние сценария, если его ревизия не изменилась с момента чтения
// Поздний ответ для устаревшего состояния получит ErrStaleRevision и ничего не изменит
func (s *Store) Replace(_ context.Context, next flow.Context, expectedRevision int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(next.ID())
	if err != nil {
		return err
	}
	if e.submitting {
		return ErrSubmitInProgress
	}
	if e.ctx.Revision() != expectedRevision {
		return fmt.Errorf("%w: expected %d, actual %d", ErrStaleRevision, expectedRevision, e.ctx.Revision())
	}

	e.ctx = next
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

// BeginSubmit помечает сценарий как отправляемый
// Второй вызов до EndSubmit вернет ErrSubmitInProgress
// Время жизни продлевается, чтобы запись бронирования не пережила сам сценарий
func (s *Store) BeginSubmit(_ context.Context, id uuid.UUID, expectedRevision int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	if e.submitting {
		return ErrSubmitInProgress
	}
	if e.ctx.Revision() != expectedRevision {
		return fmt.Errorf("%w: expected %d, actual %d", ErrStaleRevision, expectedRevision, e.ctx.Revision())
	}

	e.submitting = true
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

// CompleteSubmit сохраняет итоговое состояние и снимает отметку отправки
func (s *Store) CompleteSubmit(_ context.Context, next flow.Context, expectedRevision int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(next.ID())
	if err != nil {
		return err
	}
	if e.ctx.Revision() != expectedRevision {
		return fmt.Errorf("%w: expected %d, actual %d", ErrStaleRevision, expectedRevision, e.ctx.Revision())
	}

	e.ctx = next
	e.submitting = false
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

// EndSubmit снимает отметку отправки без изменения состояния
func (s *Store) EndSubmit(_ context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.flows[id]; ok {
		e.submitting = false
	}
}

// Delete удаляет сценарий
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	if e.submitting {
		return ErrSubmitInProgress
	}
	delete(s.flows, id)
	return nil
}

// Cleanup удаляет истекшие сценарии и возвращает количество оставшихся
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.flows {
		if s.expired(e) && !e.submitting {
			delete(s.flows, id)
		}
	}
	return len(s.flows)
}

// RunJanitor периодически вызывает Cleanup до отмены контекста
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration, onCleanup func(active int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			active := s.Cleanup()
			if onCleanup != nil {
				onCleanup(active)
			}
		}
	}
}

// Отправляемый сценарий не истекает, пока отправка не завершится
func (s *Store) lookup(id uuid.UUID) (*entry, error) {
	e, ok := s.flows[id]
	if !ok || (s.expired(e) && !e.submitting) {
		return nil, ErrFlowNotFound
	}
	return e, nil
}

func (s *Store) expired(e *entry) bool {
	return !s.now().Before(e.expiresAt)
}
