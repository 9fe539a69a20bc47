package wizard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"carrental-backend/internal/models"
	"carrental-backend/internal/services/availability"
)

// Step представляет шаг мастера бронирования
type Step int

const (
	StepSelectVehicle          Step = 1 // Выбор автомобиля
	StepGuestDetails           Step = 2 // Контактные данные гостя
	StepReview                 Step = 3 // Проверка и итоговая стоимость
	StepPendingLocationConfirm Step = 4 // Подтверждение пункта выдачи
	StepConfirmed              Step = 5 // Бронирование подтверждено (терминальный шаг)
)

// Стоимость считается за фиксированные 3 дня аренды независимо от выбранных дат.
// Так ведет себя исходная витрина, поведение сохранено сознательно.
const (
	fixedRentalDays = 3
	taxesFee        = 145.0
	securityDeposit = 500.0
)

var (
	ErrVehicleRequired   = errors.New("не выбран автомобиль")
	ErrInvalidTransition = errors.New("переход недоступен на текущем шаге")
	ErrAlreadyValidating = errors.New("проверка локации уже выполняется")
	ErrSessionClosed     = errors.New("сессия бронирования закрыта")
)

// LocationValidator проверяет доступность пункта выдачи
type LocationValidator interface {
	Validate(ctx context.Context, locationID string) (availability.Result, error)
}

// Confirmation представляет итог подтвержденного бронирования
type Confirmation struct {
	Code        string           `json:"code"`
	VehicleID   uint             `json:"vehicle_id"`
	VehicleName string           `json:"vehicle_name"`
	Location    string           `json:"location"`
	PickupDate  string           `json:"pickup_date"`
	ReturnDate  string           `json:"return_date"`
	Guest       models.GuestInfo `json:"guest"`
	Total       float64          `json:"total"`
	ConfirmedAt time.Time        `json:"confirmed_at"`
}

// InitialData передается при открытии мастера для предзаполнения черновика
type InitialData struct {
	Vehicle    *models.Vehicle
	Location   string
	PickupDate string
	ReturnDate string
}

// Snapshot представляет текущее состояние мастера для слоя отображения.
// Снимок неизменяем, читатели не видят промежуточных состояний.
type Snapshot struct {
	ID           string                  `json:"id"`
	Step         Step                    `json:"step"`
	Vehicle      *models.VehicleResponse `json:"vehicle,omitempty"`
	Location     string                  `json:"location"`
	PickupDate   string                  `json:"pickup_date"`
	ReturnDate   string                  `json:"return_date"`
	Guest        models.GuestInfo        `json:"guest"`
	IsValidating bool                    `json:"is_validating"`
	Total        float64                 `json:"total,omitempty"`
	Confirmation *Confirmation           `json:"confirmation,omitempty"`
}

// Session представляет один проход мастера бронирования.
// Все изменения идут через методы-переходы, прямых сеттеров полей нет.
type Session struct {
	mu sync.Mutex

	id         string
	step       Step
	vehicle    *models.Vehicle
	location   string
	pickupDate string
	returnDate string
	guest      models.GuestInfo

	isValidating bool
	closed       bool
	// epoch растет при закрытии сессии: завершение проверки со старой эпохой
	// отбрасывается, чтобы устаревший колбэк не «подтвердил» новую сессию
	epoch int

	confirmation *Confirmation

	ctx    context.Context
	cancel context.CancelFunc

	validator   LocationValidator
	onConfirmed func(Confirmation)
}

func newSession(id string, init InitialData, defaultLocation string, validator LocationValidator, onConfirmed func(Confirmation)) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:          id,
		step:        StepSelectVehicle,
		location:    defaultLocation,
		ctx:         ctx,
		cancel:      cancel,
		validator:   validator,
		onConfirmed: onConfirmed,
	}

	// Если автомобиль выбран заранее (кнопка «Забронировать» на карточке),
	// мастер открывается сразу на шаге контактных данных
	if init.Vehicle != nil {
		v := *init.Vehicle
		s.vehicle = &v
		s.step = StepGuestDetails
	}
	if init.Location != "" {
		s.location = init.Location
	}
	s.pickupDate = init.PickupDate
	s.returnDate = init.ReturnDate

	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Snapshot возвращает копию текущего состояния мастера
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.id,
		Step:         s.step,
		Location:     s.location,
		PickupDate:   s.pickupDate,
		ReturnDate:   s.returnDate,
		Guest:        s.guest,
		IsValidating: s.isValidating,
		Confirmation: s.confirmation,
	}
	if s.vehicle != nil {
		resp := s.vehicle.ToResponse()
		snap.Vehicle = &resp
		if s.step >= StepReview {
			snap.Total = totalFor(s.vehicle.DailyRate)
		}
	}
	return snap
}

// SelectVehicle фиксирует выбор автомобиля и переводит мастер на шаг контактных данных.
// Без выбранного автомобиля переход невозможен, состояние не меняется.
func (s *Session) SelectVehicle(v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.step != StepSelectVehicle {
		return ErrInvalidTransition
	}
	if v == nil {
		return ErrVehicleRequired
	}

	vehicle := *v
	s.vehicle = &vehicle
	s.step = StepGuestDetails
	return nil
}

// SubmitDetails сохраняет контактные данные и переводит мастер на шаг проверки.
// Содержимое полей не валидируется: пустой email или перепутанные даты
// принимаются, как и в исходной форме.
func (s *Session) SubmitDetails(guest models.GuestInfo, pickupDate, returnDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.step != StepGuestDetails {
		return ErrInvalidTransition
	}

	s.guest = guest
	if pickupDate != "" {
		s.pickupDate = pickupDate
	}
	if returnDate != "" {
		s.returnDate = returnDate
	}
	s.step = StepReview
	return nil
}

// SubmitReservation отправляет заявку и переводит мастер в ожидание подтверждения локации
func (s *Session) SubmitReservation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.step != StepReview {
		return ErrInvalidTransition
	}

	s.step = StepPendingLocationConfirm
	return nil
}

// Back возвращает мастер на предыдущий шаг.
// На первом шаге ничего не происходит, после отправки заявки возврата нет.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	switch s.step {
	case StepSelectVehicle:
		return nil
	case StepGuestDetails, StepReview:
		s.step--
		return nil
	default:
		return ErrInvalidTransition
	}
}

// SetLocation меняет пункт выдачи. Доступно только на шаге подтверждения локации.
// Идентификатор не сверяется со списком известных локаций, как и в исходной форме
// с резервным пунктом выпадающего списка.
func (s *Session) SetLocation(locationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.step != StepPendingLocationConfirm {
		return ErrInvalidTransition
	}
	if locationID != "" {
		s.location = locationID
	}
	return nil
}

// ConfirmLocation запускает асинхронную проверку доступности пункта выдачи.
// На время проверки выставляется флаг isValidating; по ее завершении мастер
// переходит в терминальный шаг Confirmed. Отказов у проверки нет.
func (s *Session) ConfirmLocation() error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.step != StepPendingLocationConfirm {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	if s.isValidating {
		s.mu.Unlock()
		return ErrAlreadyValidating
	}

	s.isValidating = true
	epoch := s.epoch
	location := s.location
	ctx := s.ctx
	s.mu.Unlock()

	go s.runValidation(ctx, epoch, location)
	return nil
}

func (s *Session) runValidation(ctx context.Context, epoch int, location string) {
	result, err := s.validator.Validate(ctx, location)

	s.mu.Lock()

	// Сессию могли закрыть, пока шла проверка: устаревший результат отбрасываем
	if s.closed || s.epoch != epoch || s.step != StepPendingLocationConfirm {
		s.mu.Unlock()
		return
	}

	s.isValidating = false
	if err != nil {
		// Единственный способ попасть сюда - отмена контекста при закрытии,
		// но закрытая сессия отбрасывается выше. Оставляем мастер на шаге подтверждения.
		s.mu.Unlock()
		return
	}

	conf := Confirmation{
		Code:        generateConfirmationCode(),
		VehicleID:   s.vehicle.ID,
		VehicleName: s.vehicle.Name,
		Location:    result.LocationID,
		PickupDate:  s.pickupDate,
		ReturnDate:  s.returnDate,
		Guest:       s.guest,
		Total:       totalFor(s.vehicle.DailyRate),
		ConfirmedAt: time.Now(),
	}
	s.confirmation = &conf
	s.step = StepConfirmed
	onConfirmed := s.onConfirmed
	s.mu.Unlock()

	if onConfirmed != nil {
		onConfirmed(conf)
	}
}

// close помечает сессию закрытой и отменяет незавершенную проверку
func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.epoch++
	s.isValidating = false
	s.mu.Unlock()
	s.cancel()
}

// totalFor считает итоговую стоимость: аренда за 3 дня + сборы + депозит
func totalFor(dailyRate float64) float64 {
	return dailyRate*fixedRentalDays + taxesFee + securityDeposit
}

// generateConfirmationCode генерирует код подтверждения вида #AERO-8821
func generateConfirmationCode() string {
	return fmt.Sprintf("#AERO-%04d", 1000+rand.Intn(9000))
}
