package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения локации
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusActive    BookingStatus = "active"    // Автомобиль выдан
	BookingStatusCompleted BookingStatus = "completed" // Завершено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

// GuestInfo представляет контактные данные гостя из формы бронирования.
// Формат email и телефона намеренно не проверяется.
type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Booking представляет подтвержденное бронирование автомобиля
type Booking struct {
	ID          uint          `json:"id"`
	Code        string        `json:"code"`
	VehicleID   uint          `json:"vehicle_id"`
	VehicleName string        `json:"vehicle_name"`
	Location    string        `json:"location"`
	PickupDate  string        `json:"pickup_date"`
	ReturnDate  string        `json:"return_date"`
	Guest       GuestInfo     `json:"guest"`
	Total       float64       `json:"total"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingResponse представляет ответ API с информацией о бронировании
type BookingResponse struct {
	ID          uint          `json:"id"`
	Code        string        `json:"code"`
	VehicleID   uint          `json:"vehicle_id"`
	VehicleName string        `json:"vehicle_name"`
	Location    string        `json:"location"`
	PickupDate  string        `json:"pickup_date"`
	ReturnDate  string        `json:"return_date"`
	Guest       GuestInfo     `json:"guest"`
	Total       float64       `json:"total"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Code:        b.Code,
		VehicleID:   b.VehicleID,
		VehicleName: b.VehicleName,
		Location:    b.Location,
		PickupDate:  b.PickupDate,
		ReturnDate:  b.ReturnDate,
		Guest:       b.Guest,
		Total:       b.Total,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
