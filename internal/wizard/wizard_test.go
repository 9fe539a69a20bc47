package wizard

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"carrental-backend/internal/models"
	"carrental-backend/internal/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:        1,
		Name:      "Audi Q8",
		Category:  models.VehicleCategorySUV,
		DailyRate: 1200,
		Status:    models.VehicleStatusAvailable,
	}
}

func testManager(delay time.Duration, onConfirmed func(Confirmation)) *Manager {
	return NewManager(availability.NewServiceWithDelay(delay), "casablanca-airport", onConfirmed)
}

func TestOpenWithoutVehicleStartsAtSelectStep(t *testing.T) {
	m := testManager(time.Millisecond, nil)

	s := m.Open(InitialData{})
	snap := s.Snapshot()

	assert.Equal(t, StepSelectVehicle, snap.Step)
	assert.Nil(t, snap.Vehicle)
	assert.Equal(t, "casablanca-airport", snap.Location)
	assert.False(t, snap.IsValidating)
}

func TestOpenWithVehicleSkipsSelectStep(t *testing.T) {
	m := testManager(time.Millisecond, nil)

	s := m.Open(InitialData{
		Vehicle:    testVehicle(),
		Location:   "ain-diab",
		PickupDate: "2026-09-10",
		ReturnDate: "2026-09-13",
	})
	snap := s.Snapshot()

	assert.Equal(t, StepGuestDetails, snap.Step)
	require.NotNil(t, snap.Vehicle)
	assert.Equal(t, uint(1), snap.Vehicle.ID)
	assert.Equal(t, "ain-diab", snap.Location)
	assert.Equal(t, "2026-09-10", snap.PickupDate)
	assert.Equal(t, models.GuestInfo{}, snap.Guest)
}

func TestSelectVehicleRequired(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{})

	err := s.SelectVehicle(nil)
	assert.ErrorIs(t, err, ErrVehicleRequired)
	assert.Equal(t, StepSelectVehicle, s.Snapshot().Step)

	require.NoError(t, s.SelectVehicle(testVehicle()))
	assert.Equal(t, StepGuestDetails, s.Snapshot().Step)
}

func TestBackTransitions(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{})

	// Назад с первого шага - ничего не меняется
	require.NoError(t, s.Back())
	assert.Equal(t, StepSelectVehicle, s.Snapshot().Step)

	require.NoError(t, s.SelectVehicle(testVehicle()))
	require.NoError(t, s.Back())
	assert.Equal(t, StepSelectVehicle, s.Snapshot().Step)

	require.NoError(t, s.SelectVehicle(testVehicle()))
	require.NoError(t, s.SubmitDetails(models.GuestInfo{FirstName: "Sofia"}, "", ""))
	require.NoError(t, s.Back())
	assert.Equal(t, StepGuestDetails, s.Snapshot().Step)

	// После отправки заявки возврата нет
	require.NoError(t, s.SubmitDetails(models.GuestInfo{}, "", ""))
	require.NoError(t, s.SubmitReservation())
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
	assert.Equal(t, StepPendingLocationConfirm, s.Snapshot().Step)
}

func TestStepStaysInRange(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{Vehicle: testVehicle()})

	// Произвольная последовательность переходов не выводит шаг за [1,5]
	_ = s.Back()
	_ = s.Back()
	_ = s.Back()
	assert.Equal(t, StepSelectVehicle, s.Snapshot().Step)

	_ = s.SubmitReservation()
	_ = s.SubmitDetails(models.GuestInfo{}, "", "")
	snap := s.Snapshot()
	assert.GreaterOrEqual(t, int(snap.Step), 1)
	assert.LessOrEqual(t, int(snap.Step), 5)
}

func TestReviewTotalFormula(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{Vehicle: testVehicle()})

	require.NoError(t, s.SubmitDetails(models.GuestInfo{FirstName: "Yassine"}, "2026-09-10", "2026-09-20"))
	snap := s.Snapshot()

	assert.Equal(t, StepReview, snap.Step)
	// Стоимость всегда за фиксированные 3 дня, выбранные даты не учитываются
	assert.Equal(t, 4245.0, snap.Total)
}

func TestPermissiveGuestDetails(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{Vehicle: testVehicle()})

	// Пустые поля и некорректный email принимаются без ошибок
	err := s.SubmitDetails(models.GuestInfo{Email: "not-an-email"}, "2026-09-20", "2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, StepReview, s.Snapshot().Step)
}

func TestConfirmLocationReachesTerminalStep(t *testing.T) {
	var confirmed atomic.Int32
	var got Confirmation
	m := testManager(100*time.Millisecond, func(c Confirmation) {
		got = c
		confirmed.Add(1)
	})

	s := m.Open(InitialData{Vehicle: testVehicle(), PickupDate: "2026-09-10", ReturnDate: "2026-09-13"})
	require.NoError(t, s.SubmitDetails(models.GuestInfo{FirstName: "Sofia", Email: "s@example.com"}, "", ""))
	require.NoError(t, s.SubmitReservation())

	// Произвольная локация, в том числе неизвестная, проходит проверку
	require.NoError(t, s.SetLocation("somewhere-else"))
	require.NoError(t, s.ConfirmLocation())
	assert.True(t, s.Snapshot().IsValidating)

	// Повторный запуск проверки до завершения отклоняется
	assert.ErrorIs(t, s.ConfirmLocation(), ErrAlreadyValidating)

	require.Eventually(t, func() bool {
		return confirmed.Load() == 1
	}, time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, StepConfirmed, snap.Step)
	assert.False(t, snap.IsValidating)
	require.NotNil(t, snap.Confirmation)
	assert.True(t, strings.HasPrefix(snap.Confirmation.Code, "#AERO-"), "код: %s", snap.Confirmation.Code)
	assert.Equal(t, "somewhere-else", snap.Confirmation.Location)
	assert.Equal(t, 4245.0, snap.Confirmation.Total)
	assert.Equal(t, int32(1), confirmed.Load())
	assert.Equal(t, got.Code, snap.Confirmation.Code)
}

func TestConfirmLocationOnlyAtPendingStep(t *testing.T) {
	m := testManager(time.Millisecond, nil)
	s := m.Open(InitialData{Vehicle: testVehicle()})

	assert.ErrorIs(t, s.ConfirmLocation(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetLocation("ain-diab"), ErrInvalidTransition)
}

func TestStaleValidationDiscardedAfterClose(t *testing.T) {
	var confirmed atomic.Int32
	m := testManager(50*time.Millisecond, func(Confirmation) {
		confirmed.Add(1)
	})

	s := m.Open(InitialData{Vehicle: testVehicle()})
	require.NoError(t, s.SubmitDetails(models.GuestInfo{}, "", ""))
	require.NoError(t, s.SubmitReservation())
	require.NoError(t, s.ConfirmLocation())

	// Закрываем мастер до завершения проверки: устаревший результат отбрасывается
	require.True(t, m.Close(s.ID()))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), confirmed.Load())
	assert.NotEqual(t, StepConfirmed, s.Snapshot().Step)
}

func TestReentryResetsDraft(t *testing.T) {
	m := testManager(time.Millisecond, nil)

	s1 := m.Open(InitialData{Vehicle: testVehicle()})
	require.NoError(t, s1.SubmitDetails(models.GuestInfo{FirstName: "Yassine", Email: "y@example.com"}, "2026-09-10", "2026-09-13"))
	require.True(t, m.Close(s1.ID()))

	// Новое открытие всегда дает чистый черновик
	s2 := m.Open(InitialData{})
	snap := s2.Snapshot()
	assert.Equal(t, StepSelectVehicle, snap.Step)
	assert.Equal(t, models.GuestInfo{}, snap.Guest)
	assert.Empty(t, snap.PickupDate)

	// Операции над закрытой сессией отклоняются
	assert.ErrorIs(t, s1.SubmitReservation(), ErrSessionClosed)
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := testManager(time.Millisecond, nil)

	s := m.Open(InitialData{})
	assert.Equal(t, 1, m.ActiveCount())

	found, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Equal(t, s.ID(), found.ID())

	require.True(t, m.Close(s.ID()))
	assert.False(t, m.Close(s.ID()))
	assert.Equal(t, 0, m.ActiveCount())

	_, ok = m.Get(s.ID())
	assert.False(t, ok)
}
