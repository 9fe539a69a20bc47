package simulation

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"carrental-backend/internal/middleware"
	"carrental-backend/internal/models"
)

// Границы городской зоны Касабланки, за которые автомобили в городском
// режиме не выходят
const (
	urbanLatMin = 33.52
	urbanLatMax = 33.60
	urbanLngMin = -7.68
	urbanLngMax = -7.55
)

// Скорости по режимам движения (км/ч) и шаг случайного блуждания (градусы)
const (
	urbanSpeedMin   = 20.0
	urbanSpeedMax   = 58.0
	highwaySpeedMin = 90.0
	highwaySpeedMax = 120.0
	urbanJitter     = 0.00025
)

// Route описывает кольцевой маршрут по трассе: автомобиль движется от старта
// к точке назначения фиксированными шагами и после пересечения долготы
// назначения возвращается ровно на старт
type Route struct {
	Start models.Location
	End   models.Location
	// Steps - число тиков на полный проход маршрута
	Steps int
}

func (r Route) delta() models.Location {
	steps := r.Steps
	if steps <= 0 {
		steps = 120
	}
	return models.Location{
		Latitude:  (r.End.Latitude - r.Start.Latitude) / float64(steps),
		Longitude: (r.End.Longitude - r.Start.Longitude) / float64(steps),
	}
}

// TrackedVehicle описывает автомобиль, участвующий в симуляции
type TrackedVehicle struct {
	VehicleID uint
	Mode      models.MovementMode
	Start     models.Location
	Route     *Route // только для режима highway
}

// Simulator генерирует правдоподобные координаты автопарка без реального
// источника телеметрии. Каждый тик строит новый срез позиций из предыдущего,
// ни одна позиция не изменяется на месте: читатели всегда видят целостный снимок.
type Simulator struct {
	mu        sync.RWMutex
	config    []TrackedVehicle
	positions []models.VehiclePosition

	interval time.Duration
	onTick   func([]models.VehiclePosition)

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSimulator создает симулятор позиций для переданного набора автомобилей
func NewSimulator(vehicles []TrackedVehicle, interval time.Duration, onTick func([]models.VehiclePosition)) *Simulator {
	if interval <= 0 {
		interval = time.Second
	}

	now := time.Now()
	positions := make([]models.VehiclePosition, len(vehicles))
	for i, v := range vehicles {
		// До первого тика скорость нулевая, поэтому движущиеся режимы
		// стартуют на холостом ходу, а не в движении
		status := models.TrackingStatusParked
		if v.Mode != models.MovementModeStationary {
			status = models.TrackingStatusIdling
		}
		positions[i] = models.VehiclePosition{
			VehicleID: v.VehicleID,
			Location:  v.Start,
			Speed:     0,
			Status:    status,
			UpdatedAt: now,
		}
	}

	return &Simulator{
		config:    vehicles,
		positions: positions,
		interval:  interval,
		onTick:    onTick,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start запускает таймер симуляции
func (s *Simulator) Start() {
	log.Printf("Запуск симуляции позиций автопарка: %d автомобилей, интервал %v", len(s.config), s.interval)
	go s.run()
}

func (s *Simulator) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stop:
			return
		}
	}
}

// Stop останавливает симуляцию и дожидается завершения таймера.
// После возврата ни один снимок больше не изменится.
func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

// Snapshot возвращает копию последнего среза позиций.
// Потребители должны считать снимок неизменяемым.
func (s *Simulator) Snapshot() []models.VehiclePosition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VehiclePosition, len(s.positions))
	copy(out, s.positions)
	return out
}

func (s *Simulator) tick() {
	s.mu.Lock()
	next := advance(s.config, s.positions)
	s.positions = next
	s.mu.Unlock()

	middleware.SimulationTicksTotal.Inc()

	if s.onTick != nil {
		snapshot := make([]models.VehiclePosition, len(next))
		copy(snapshot, next)
		s.onTick(snapshot)
	}
}

// advance строит новый срез позиций из предыдущего по правилам движения
func advance(config []TrackedVehicle, prev []models.VehiclePosition) []models.VehiclePosition {
	now := time.Now()
	next := make([]models.VehiclePosition, len(prev))
	for i, p := range prev {
		switch config[i].Mode {
		case models.MovementModeUrban:
			next[i] = stepUrban(p, now)
		case models.MovementModeHighway:
			next[i] = stepHighway(p, config[i].Route, now)
		default:
			next[i] = stepStationary(p, now)
		}
	}
	return next
}

// stepStationary: автомобиль стоит, скорость нулевая
func stepStationary(p models.VehiclePosition, now time.Time) models.VehiclePosition {
	p.Speed = 0
	p.Status = models.TrackingStatusParked
	p.UpdatedAt = now
	return p
}

// stepUrban: случайное блуждание в пределах городской зоны
func stepUrban(p models.VehiclePosition, now time.Time) models.VehiclePosition {
	p.Speed = uniform(urbanSpeedMin, urbanSpeedMax)
	p.Location.Latitude = clamp(p.Location.Latitude+uniform(-urbanJitter, urbanJitter), urbanLatMin, urbanLatMax)
	p.Location.Longitude = clamp(p.Location.Longitude+uniform(-urbanJitter, urbanJitter), urbanLngMin, urbanLngMax)
	if p.Speed > 0 {
		p.Status = models.TrackingStatusMoving
	} else {
		p.Status = models.TrackingStatusIdling
	}
	p.UpdatedAt = now
	return p
}

// stepHighway: движение фиксированным шагом к точке назначения,
// после пересечения долготы назначения - жесткий сброс на старт маршрута
func stepHighway(p models.VehiclePosition, route *Route, now time.Time) models.VehiclePosition {
	if route == nil {
		return stepStationary(p, now)
	}

	p.Speed = uniform(highwaySpeedMin, highwaySpeedMax)
	p.Status = models.TrackingStatusMoving
	p.UpdatedAt = now

	if p.Location.Longitude >= route.End.Longitude {
		p.Location = route.Start
		return p
	}

	d := route.delta()
	p.Location.Latitude += d.Latitude
	p.Location.Longitude += d.Longitude
	return p
}

func uniform(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// FleetFromVehicles собирает конфигурацию симуляции из текущего автопарка:
// выданные автомобили двигаются (первый - по трассе в аэропорт, остальные
// по городу), свободные и обслуживаемые стоят на площадке.
func FleetFromVehicles(vehicles []models.Vehicle, depot models.Location, highwayRoute Route) []TrackedVehicle {
	tracked := make([]TrackedVehicle, 0, len(vehicles))
	highwayAssigned := false

	for _, v := range vehicles {
		switch {
		case v.Status == models.VehicleStatusRented && !highwayAssigned:
			highwayAssigned = true
			route := highwayRoute
			tracked = append(tracked, TrackedVehicle{
				VehicleID: v.ID,
				Mode:      models.MovementModeHighway,
				Start:     route.Start,
				Route:     &route,
			})
		case v.Status == models.VehicleStatusRented:
			tracked = append(tracked, TrackedVehicle{
				VehicleID: v.ID,
				Mode:      models.MovementModeUrban,
				Start:     models.Location{Latitude: 33.5731, Longitude: -7.5898},
			})
		default:
			tracked = append(tracked, TrackedVehicle{
				VehicleID: v.ID,
				Mode:      models.MovementModeStationary,
				Start:     depot,
			})
		}
	}
	return tracked
}
