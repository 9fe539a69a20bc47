package models

import (
	"time"
)

type VehicleCategory string

const (
	VehicleCategorySUV      VehicleCategory = "suv"      // Внедорожники
	VehicleCategorySport    VehicleCategory = "sport"    // Спортивные автомобили
	VehicleCategoryLuxury   VehicleCategory = "luxury"   // Премиум-седаны
	VehicleCategoryElectric VehicleCategory = "electric" // Электромобили
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"   // Доступен для бронирования
	VehicleStatusRented      VehicleStatus = "rented"      // Выдан клиенту
	VehicleStatusMaintenance VehicleStatus = "maintenance" // На обслуживании
)

// Vehicle представляет автомобиль автопарка
type Vehicle struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     VehicleCategory `json:"category"`
	DailyRate    float64         `json:"daily_rate"`
	ImageURL     string          `json:"image_url"`
	Seats        int             `json:"seats"`
	Transmission string          `json:"transmission"`
	Status       VehicleStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// VehicleResponse представляет ответ API с информацией об автомобиле
type VehicleResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     VehicleCategory `json:"category"`
	DailyRate    float64         `json:"daily_rate"`
	ImageURL     string          `json:"image_url"`
	Seats        int             `json:"seats"`
	Transmission string          `json:"transmission"`
	Status       VehicleStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// VehicleCreate используется только для добавления нового автомобиля
type VehicleCreate struct {
	Name         string          `json:"name" binding:"required"`
	Category     VehicleCategory `json:"category" binding:"required"`
	DailyRate    float64         `json:"daily_rate" binding:"required"`
	ImageURL     string          `json:"image_url"`
	Seats        int             `json:"seats"`
	Transmission string          `json:"transmission"`
}

// VehicleUpdate используется для частичного обновления автомобиля
type VehicleUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Category     *VehicleCategory `json:"category,omitempty"`
	DailyRate    *float64         `json:"daily_rate,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Seats        *int             `json:"seats,omitempty"`
	Transmission *string          `json:"transmission,omitempty"`
	Status       *VehicleStatus   `json:"status,omitempty"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Name:         v.Name,
		Category:     v.Category,
		DailyRate:    v.DailyRate,
		ImageURL:     v.ImageURL,
		Seats:        v.Seats,
		Transmission: v.Transmission,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}
