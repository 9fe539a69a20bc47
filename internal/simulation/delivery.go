package simulation

import (
	"time"

	"carrental-backend/internal/models"
)

// DeliveryTracker считает прогресс доставки автомобиля клиенту.
// Координата не хранится и не мутируется таймером: позиция выводится
// из прошедшего времени линейной интерполяцией между точкой выдачи
// и точкой назначения.
type DeliveryTracker struct {
	bookingCode string
	pickup      models.Location
	destination models.Location
	total       time.Duration
	startedAt   time.Time
}

// NewDeliveryTracker создает трекер доставки с обратным отсчетом
func NewDeliveryTracker(bookingCode string, pickup, destination models.Location, total time.Duration, startedAt time.Time) *DeliveryTracker {
	return &DeliveryTracker{
		bookingCode: bookingCode,
		pickup:      pickup,
		destination: destination,
		total:       total,
		startedAt:   startedAt,
	}
}

// Fraction возвращает долю пройденного пути на момент now.
// Значение всегда в [0,1]: после истечения отсчета позиция не уходит
// дальше точки назначения.
func (d *DeliveryTracker) Fraction(now time.Time) float64 {
	if d.total <= 0 {
		return 1
	}

	remaining := d.total - now.Sub(d.startedAt)
	fraction := 1 - remaining.Seconds()/d.total.Seconds()
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// Progress возвращает снимок состояния доставки на момент now
func (d *DeliveryTracker) Progress(now time.Time) models.DeliveryProgress {
	fraction := d.Fraction(now)

	remaining := int(d.total.Seconds() - fraction*d.total.Seconds())
	if remaining < 0 {
		remaining = 0
	}

	return models.DeliveryProgress{
		BookingCode:      d.bookingCode,
		RemainingSeconds: remaining,
		TotalSeconds:     int(d.total.Seconds()),
		ElapsedFraction:  fraction,
		Position:         Lerp(d.pickup, d.destination, fraction),
		Arrived:          fraction >= 1,
	}
}

// Deadline возвращает момент прибытия автомобиля в точку назначения
func (d *DeliveryTracker) Deadline() time.Time {
	return d.startedAt.Add(d.total)
}

// RemainingDistance возвращает оставшееся до точки назначения расстояние в метрах
func (d *DeliveryTracker) RemainingDistance(now time.Time) float64 {
	return Distance(d.Progress(now).Position, d.destination)
}
