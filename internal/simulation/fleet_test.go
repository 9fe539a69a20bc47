package simulation

import (
	"testing"
	"time"

	"carrental-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urbanConfig() []TrackedVehicle {
	return []TrackedVehicle{
		{
			VehicleID: 1,
			Mode:      models.MovementModeUrban,
			Start:     models.Location{Latitude: 33.5731, Longitude: -7.5898},
		},
	}
}

func highwayConfig() ([]TrackedVehicle, Route) {
	route := Route{
		Start: models.Location{Latitude: 33.5731, Longitude: -7.6890},
		End:   models.Location{Latitude: 33.3675, Longitude: -7.5898},
		Steps: 100,
	}
	return []TrackedVehicle{
		{
			VehicleID: 2,
			Mode:      models.MovementModeHighway,
			Start:     route.Start,
			Route:     &route,
		},
	}, route
}

func TestUrbanWalkStaysInsideBoundingBox(t *testing.T) {
	config := urbanConfig()
	sim := NewSimulator(config, time.Second, nil)
	positions := sim.Snapshot()

	for i := 0; i < 5000; i++ {
		positions = advance(config, positions)

		p := positions[0]
		require.GreaterOrEqual(t, p.Location.Latitude, urbanLatMin, "тик %d", i)
		require.LessOrEqual(t, p.Location.Latitude, urbanLatMax, "тик %d", i)
		require.GreaterOrEqual(t, p.Location.Longitude, urbanLngMin, "тик %d", i)
		require.LessOrEqual(t, p.Location.Longitude, urbanLngMax, "тик %d", i)

		require.GreaterOrEqual(t, p.Speed, urbanSpeedMin)
		require.LessOrEqual(t, p.Speed, urbanSpeedMax)
		require.Equal(t, models.TrackingStatusMoving, p.Status)
	}
}

func TestHighwayLongitudeMonotonicUntilReset(t *testing.T) {
	config, route := highwayConfig()
	sim := NewSimulator(config, time.Second, nil)
	positions := sim.Snapshot()

	resets := 0
	for i := 0; i < 300; i++ {
		prev := positions[0]
		positions = advance(config, positions)
		next := positions[0]

		if prev.Location.Longitude >= route.End.Longitude {
			// Пересекли долготу назначения: жесткий сброс ровно на старт
			assert.Equal(t, route.Start, next.Location, "тик %d", i)
			resets++
		} else {
			assert.Greater(t, next.Location.Longitude, prev.Location.Longitude, "тик %d", i)
		}

		require.GreaterOrEqual(t, next.Speed, highwaySpeedMin)
		require.LessOrEqual(t, next.Speed, highwaySpeedMax)
		require.Equal(t, models.TrackingStatusMoving, next.Status)
	}

	// За 300 тиков 100-шаговый маршрут должен замкнуться хотя бы дважды
	assert.GreaterOrEqual(t, resets, 2)
}

func TestInitialSnapshotSpeedMatchesStatus(t *testing.T) {
	config, _ := highwayConfig()
	config = append(config, urbanConfig()...)
	config = append(config, TrackedVehicle{
		VehicleID: 9,
		Mode:      models.MovementModeStationary,
		Start:     models.Location{Latitude: 33.5883, Longitude: -7.6114},
	})

	sim := NewSimulator(config, time.Second, nil)

	// До первого тика никто не движется: нулевая скорость не сочетается со статусом moving
	for _, p := range sim.Snapshot() {
		assert.Zero(t, p.Speed, "автомобиль %d", p.VehicleID)
		assert.Contains(t,
			[]models.TrackingStatus{models.TrackingStatusParked, models.TrackingStatusIdling},
			p.Status, "автомобиль %d", p.VehicleID)
	}
}

func TestStationaryVehicleNeverMoves(t *testing.T) {
	start := models.Location{Latitude: 33.5883, Longitude: -7.6114}
	config := []TrackedVehicle{
		{VehicleID: 3, Mode: models.MovementModeStationary, Start: start},
	}
	sim := NewSimulator(config, time.Second, nil)
	positions := sim.Snapshot()

	for i := 0; i < 100; i++ {
		positions = advance(config, positions)
		p := positions[0]
		assert.Equal(t, start, p.Location)
		assert.Zero(t, p.Speed)
		assert.Equal(t, models.TrackingStatusParked, p.Status)
	}
}

func TestAdvanceProducesNewSlice(t *testing.T) {
	config := urbanConfig()
	sim := NewSimulator(config, time.Second, nil)

	before := sim.Snapshot()
	next := advance(config, before)

	// Предыдущий срез не изменяется на месте
	assert.Equal(t, sim.Snapshot(), before)
	assert.NotSame(t, &before[0], &next[0])
}

func TestSnapshotReturnsCopy(t *testing.T) {
	config := urbanConfig()
	sim := NewSimulator(config, time.Second, nil)

	snap := sim.Snapshot()
	snap[0].Location.Latitude = 0

	assert.NotZero(t, sim.Snapshot()[0].Location.Latitude)
}

func TestStopHaltsTicking(t *testing.T) {
	config := urbanConfig()

	ticks := make(chan struct{}, 100)
	sim := NewSimulator(config, 5*time.Millisecond, func([]models.VehiclePosition) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})

	sim.Start()

	// Дожидаемся хотя бы одного тика
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("симуляция не сделала ни одного тика")
	}

	sim.Stop()

	// После остановки снимок больше не меняется
	after := sim.Snapshot()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, sim.Snapshot())
}

func TestFleetFromVehiclesAssignsModes(t *testing.T) {
	depot := models.Location{Latitude: 33.5883, Longitude: -7.6114}
	_, route := highwayConfig()

	vehicles := []models.Vehicle{
		{ID: 1, Status: models.VehicleStatusAvailable},
		{ID: 2, Status: models.VehicleStatusRented},
		{ID: 3, Status: models.VehicleStatusRented},
		{ID: 4, Status: models.VehicleStatusMaintenance},
	}

	tracked := FleetFromVehicles(vehicles, depot, route)
	require.Len(t, tracked, 4)

	assert.Equal(t, models.MovementModeStationary, tracked[0].Mode)
	// Первый выданный автомобиль едет по трассе, остальные - по городу
	assert.Equal(t, models.MovementModeHighway, tracked[1].Mode)
	require.NotNil(t, tracked[1].Route)
	assert.Equal(t, models.MovementModeUrban, tracked[2].Mode)
	assert.Equal(t, models.MovementModeStationary, tracked[3].Mode)
}
