package models

import (
	"time"
)

type TrackingStatus string

const (
	TrackingStatusParked  TrackingStatus = "parked"  // Припаркован
	TrackingStatusIdling  TrackingStatus = "idling"  // На холостом ходу
	TrackingStatusMoving  TrackingStatus = "moving"  // В движении
	TrackingStatusOffline TrackingStatus = "offline" // Нет связи
)

type MovementMode string

const (
	MovementModeStationary MovementMode = "stationary" // Не двигается
	MovementModeUrban      MovementMode = "urban"      // Городской режим (случайное блуждание)
	MovementModeHighway    MovementMode = "highway"    // Трасса (движение к точке назначения)
)

// VehiclePosition представляет один снимок телеметрии автомобиля
type VehiclePosition struct {
	VehicleID uint           `json:"vehicle_id"`
	Location  Location       `json:"location"`
	Speed     float64        `json:"speed"`
	Status    TrackingStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DeliveryProgress представляет состояние доставки автомобиля клиенту
type DeliveryProgress struct {
	BookingCode      string   `json:"booking_code"`
	RemainingSeconds int      `json:"remaining_seconds"`
	TotalSeconds     int      `json:"total_seconds"`
	ElapsedFraction  float64  `json:"elapsed_fraction"`
	Position         Location `json:"position"`
	Arrived          bool     `json:"arrived"`
}
