package handlers

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"carrental-backend/internal/models"
	"carrental-backend/internal/simulation"
	"carrental-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// FleetPositions возвращает последний снимок позиций автопарка
func FleetPositions(sim *simulation.Simulator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sim.Snapshot())
	}
}

// Точка назначения демонстрационной доставки (клиентский адрес в центре города)
var deliveryDestination = models.Location{Latitude: 33.5792, Longitude: -7.6133}

// deliveryRegistry хранит активные трекеры доставки по коду бронирования.
// Трекер создается при первом обращении к странице отслеживания.
type deliveryRegistry struct {
	mu       sync.Mutex
	trackers map[string]*simulation.DeliveryTracker
}

// Завершенная доставка еще час остается доступной для опроса,
// после чего выбрасывается из реестра
const deliveryRetention = time.Hour

var deliveries = &deliveryRegistry{
	trackers: make(map[string]*simulation.DeliveryTracker),
}

func (r *deliveryRegistry) getOrCreate(code string, pickup models.Location) *simulation.DeliveryTracker {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep(time.Now())

	if t, ok := r.trackers[code]; ok {
		return t
	}

	total := 900
	if val, err := strconv.Atoi(os.Getenv("DELIVERY_COUNTDOWN_SECONDS")); err == nil && val > 0 {
		total = val
	}

	t := simulation.NewDeliveryTracker(code, pickup, deliveryDestination,
		time.Duration(total)*time.Second, time.Now())
	r.trackers[code] = t
	return t
}

// sweep вызывается под уже взятой блокировкой
func (r *deliveryRegistry) sweep(now time.Time) {
	for code, t := range r.trackers {
		if now.Sub(t.Deadline()) > deliveryRetention {
			delete(r.trackers, code)
		}
	}
}

// DeliveryStatus возвращает прогресс доставки автомобиля по коду бронирования.
// Позиция выводится из прошедшего времени, после истечения отсчета
// автомобиль остается в точке назначения.
func DeliveryStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		booking, err := s.BookingByCode(code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бронирование не найдено"})
			return
		}

		pickup := deliveryDestination
		if loc, err := s.LocationByID(booking.Location); err == nil {
			pickup = loc.Location
		}

		tracker := deliveries.getOrCreate(code, pickup)
		now := time.Now()

		progress := tracker.Progress(now)
		c.JSON(http.StatusOK, gin.H{
			"booking":            booking.ToResponse(),
			"delivery":           progress,
			"remaining_distance": tracker.RemainingDistance(now),
		})
	}
}
