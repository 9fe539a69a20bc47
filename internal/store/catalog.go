package store

import (
	"errors"
	"time"

	"carrental-backend/internal/models"
)

var ErrNotFound = errors.New("запись не найдена")

// Vehicles возвращает копию списка автомобилей, опционально отфильтрованную по категории
func (s *Store) Vehicles(category models.VehicleCategory) []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if category != "" && v.Category != category {
			continue
		}
		out = append(out, v)
	}
	return out
}

// VehicleByID возвращает автомобиль по идентификатору
func (s *Store) VehicleByID(id uint) (models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Vehicle{}, ErrNotFound
}

// VehicleCreate добавляет новый автомобиль в автопарк
func (s *Store) VehicleCreate(req models.VehicleCreate) models.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	v := models.Vehicle{
		ID:           s.nextVehicleID,
		Name:         req.Name,
		Category:     req.Category,
		DailyRate:    req.DailyRate,
		ImageURL:     req.ImageURL,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		Status:       models.VehicleStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextVehicleID++
	s.vehicles = append(s.vehicles, v)
	return v
}

// VehicleUpdate обновляет поля автомобиля
func (s *Store) VehicleUpdate(id uint, req models.VehicleUpdate) (models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID != id {
			continue
		}
		v := &s.vehicles[i]
		if req.Name != nil {
			v.Name = *req.Name
		}
		if req.Category != nil {
			v.Category = *req.Category
		}
		if req.DailyRate != nil {
			v.DailyRate = *req.DailyRate
		}
		if req.ImageURL != nil {
			v.ImageURL = *req.ImageURL
		}
		if req.Seats != nil {
			v.Seats = *req.Seats
		}
		if req.Transmission != nil {
			v.Transmission = *req.Transmission
		}
		if req.Status != nil {
			v.Status = *req.Status
		}
		v.UpdatedAt = time.Now()
		return *v, nil
	}
	return models.Vehicle{}, ErrNotFound
}

// VehicleDelete удаляет автомобиль из автопарка
func (s *Store) VehicleDelete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Locations возвращает копию списка пунктов выдачи
func (s *Store) Locations() []models.PickupLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PickupLocation, len(s.locations))
	copy(out, s.locations)
	return out
}

// LocationByID возвращает пункт выдачи по идентификатору
func (s *Store) LocationByID(id string) (models.PickupLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return models.PickupLocation{}, ErrNotFound
}

// Offers возвращает копию списка акционных предложений
func (s *Store) Offers() []models.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Offer, len(s.offers))
	copy(out, s.offers)
	return out
}
