package bookingflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// flowTTL время жизни незавершённого сценария
const flowTTL = 30 * time.Minute

// Manager управляет активными сценариями записи
// Сценарии живут в памяти: незавершённый сценарий при рестарте сервиса
// теряется, клиент начинает запись заново
type Manager struct {
	mu    sync.Mutex
	flows map[string]*Flow

	availability AvailabilityResolver
	creator      BookingCreator
	timeProvider TimeProvider
	logger       Logger
}

// NewManager создает новый менеджер сценариев записи
func NewManager(availability AvailabilityResolver, creator BookingCreator, logger Logger) *Manager {
	return &Manager{
		flows:        make(map[string]*Flow),
		availability: availability,
		creator:      creator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start начинает новый сценарий записи
func (m *Manager) Start(_ context.Context) *Flow {
	now := m.timeProvider.Now()
	flow := &Flow{
		ID:        uuid.NewString(),
		State:     StateSelectingDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.evictExpired(now)
	m.flows[flow.ID] = flow
	m.mu.Unlock()

	m.logger.Info("BookingFlow: started flow id=%s", flow.ID)
	return flow.snapshot()
}

// Get возвращает текущее состояние сценария
func (m *Manager) Get(_ context.Context, id string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return flow.snapshot(), nil
}

// SelectDate выбирает дату и получает доступные слоты
// Допустим только из состояния выбора даты
func (m *Manager) SelectDate(ctx context.Context, id string, date time.Time) (*Flow, error) {
	m.mu.Lock()
	flow, err := m.lookup(id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if flow.State != StateSelectingDate {
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	m.mu.Unlock()

	// Получение слотов выполняется вне блокировки:
	// запрос к хранилищу не должен задерживать другие сценарии
	resp, err := m.availability.Execute(ctx, &get_available_slots.Request{Date: date})
	if err != nil {
		return nil, err
	}
	if len(resp.Slots) == 0 {
		m.logger.Info("BookingFlow: flow id=%s, no slots on %s", id, date.Format(domain.DateFormat))
		return nil, ErrNoSlotsAvailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err = m.lookup(id)
	if err != nil {
		return nil, err
	}

	flow.Date = date
	flow.OfferedSlots = resp.Slots
	flow.Degraded = resp.Degraded
	flow.StartTime = ""
	flow.State = StateSelectingTime
	flow.UpdatedAt = m.timeProvider.Now()

	m.logger.Info("BookingFlow: flow id=%s selected date %s, %d slots offered",
		id, date.Format(domain.DateFormat), len(resp.Slots))
	return flow.snapshot(), nil
}

// SelectTime выбирает время из предложенных слотов
func (m *Manager) SelectTime(_ context.Context, id string, startTime types.TimeString) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if flow.State != StateSelectingTime {
		return nil, ErrInvalidTransition
	}
	if !flow.offered(startTime) {
		m.logger.Warn("BookingFlow: flow id=%s, time %s not in offered slots", id, startTime)
		return nil, ErrSlotNotOffered
	}

	flow.StartTime = startTime
	flow.State = StateEnteringDetails
	flow.UpdatedAt = m.timeProvider.Now()

	m.logger.Info("BookingFlow: flow id=%s selected time %s", id, startTime)
	return flow.snapshot(), nil
}

// SubmitDetails сохраняет контактные данные клиента
func (m *Manager) SubmitDetails(_ context.Context, id string, name, email, phone string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if flow.State != StateEnteringDetails {
		return nil, ErrInvalidTransition
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return nil, ErrMissingDetails
	}

	flow.Name = name
	flow.Email = email
	flow.Phone = phone
	flow.State = StateReviewing
	flow.UpdatedAt = m.timeProvider.Now()

	m.logger.Info("BookingFlow: flow id=%s submitted details", id)
	return flow.snapshot(), nil
}

// Confirm подтверждает запись и создает бронирование
// Если слот заняли во время оформления, сценарий возвращается к выбору
// времени с обновлённым списком слотов и ошибкой ErrSlotConflict
func (m *Manager) Confirm(ctx context.Context, id string) (*Flow, *create_booking.Response, error) {
	m.mu.Lock()
	flow, err := m.lookup(id)
	if err != nil {
		m.mu.Unlock()
		return nil, nil, err
	}
	if flow.State != StateReviewing {
		m.mu.Unlock()
		return nil, nil, ErrInvalidTransition
	}
	req := &create_booking.Request{
		Date:      flow.Date,
		StartTime: flow.StartTime,
		Name:      flow.Name,
		Email:     flow.Email,
		Phone:     flow.Phone,
	}
	m.mu.Unlock()

	created, err := m.creator.Execute(ctx, req)
	if err != nil {
		if errors.Is(err, create_booking.ErrSlotTaken) {
			return m.handleConflict(ctx, id)
		}
		return nil, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	flow, lookupErr := m.lookup(id)
	if lookupErr == nil {
		flow.State = StateConfirmed
		snapshot := flow.snapshot()
		// Завершённый сценарий больше не нужен
		delete(m.flows, id)

		m.logger.Info("BookingFlow: flow id=%s confirmed, reservation id=%s", id, created.ID)
		return snapshot, created, nil
	}

	// Бронирование уже создано, отсутствие сценария не делает его невалидным
	m.logger.Warn("BookingFlow: flow id=%s disappeared after confirmation", id)
	return nil, created, nil
}

// Abandon прерывает сценарий записи
func (m *Manager) Abandon(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.flows[id]; !ok {
		return ErrFlowNotFound
	}
	delete(m.flows, id)

	m.logger.Info("BookingFlow: flow id=%s abandoned", id)
	return nil
}

// Back возвращает сценарий на предыдущий шаг
func (m *Manager) Back(_ context.Context, id string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	switch flow.State {
	case StateSelectingTime:
		flow.State = StateSelectingDate
		flow.Date = time.Time{}
		flow.OfferedSlots = nil
		flow.StartTime = ""
	case StateEnteringDetails:
		flow.State = StateSelectingTime
		flow.StartTime = ""
	case StateReviewing:
		flow.State = StateEnteringDetails
	default:
		return nil, ErrInvalidTransition
	}
	flow.UpdatedAt = m.timeProvider.Now()

	return flow.snapshot(), nil
}

// handleConflict обрабатывает занятый слот при подтверждении:
// обновляет список слотов и откатывает сценарий к выбору времени
func (m *Manager) handleConflict(ctx context.Context, id string) (*Flow, *create_booking.Response, error) {
	m.mu.Lock()
	flow, err := m.lookup(id)
	if err != nil {
		m.mu.Unlock()
		return nil, nil, err
	}
	date := flow.Date
	m.mu.Unlock()

	resp, availErr := m.availability.Execute(ctx, &get_available_slots.Request{Date: date})

	m.mu.Lock()
	defer m.mu.Unlock()

	flow, err = m.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	flow.StartTime = ""
	flow.State = StateSelectingTime
	flow.UpdatedAt = m.timeProvider.Now()
	if availErr == nil {
		flow.OfferedSlots = resp.Slots
		flow.Degraded = resp.Degraded
	} else {
		m.logger.Error("BookingFlow: flow id=%s, failed to refresh slots after conflict: %v", id, availErr)
	}

	m.logger.Warn("BookingFlow: flow id=%s, slot taken during checkout, back to time selection", id)
	return flow.snapshot(), nil, ErrSlotConflict
}

// lookup находит сценарий, вызывается под блокировкой
func (m *Manager) lookup(id string) (*Flow, error) {
	flow, ok := m.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	if m.timeProvider.Now().Sub(flow.UpdatedAt) > flowTTL {
		delete(m.flows, flow.ID)
		return nil, ErrFlowNotFound
	}
	return flow, nil
}

// evictExpired удаляет просроченные сценарии, вызывается под блокировкой
func (m *Manager) evictExpired(now time.Time) {
	for id, flow := range m.flows {
		if now.Sub(flow.UpdatedAt) > flowTTL {
			delete(m.flows, id)
		}
	}
}
