package store

import (
	"time"

	"carrental-backend/internal/models"
)

// BookingAdd сохраняет подтвержденное бронирование и возвращает его с присвоенным ID.
// Заодно обновляется счетчик бронирований клиента (клиент создается при первом бронировании).
func (s *Store) BookingAdd(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b.ID = s.nextBookingID
	s.nextBookingID++
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings = append(s.bookings, b)

	s.recordClientBooking(b.Guest, now)
	return b
}

// recordClientBooking вызывается под уже взятой блокировкой
func (s *Store) recordClientBooking(guest models.GuestInfo, now time.Time) {
	for i := range s.clients {
		if s.clients[i].Email != "" && s.clients[i].Email == guest.Email {
			s.clients[i].BookingsCount++
			s.clients[i].UpdatedAt = now
			return
		}
	}
	s.clients = append(s.clients, models.Client{
		ID:            s.nextClientID,
		FirstName:     guest.FirstName,
		LastName:      guest.LastName,
		Email:         guest.Email,
		Phone:         guest.Phone,
		BookingsCount: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	s.nextClientID++
}

// Bookings возвращает копию списка бронирований, опционально отфильтрованную по статусу
func (s *Store) Bookings(status models.BookingStatus) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, b)
	}
	return out
}

// BookingByCode возвращает бронирование по коду подтверждения
func (s *Store) BookingByCode(code string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.Code == code {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

// BookingUpdateStatus переводит бронирование в новый статус
func (s *Store) BookingUpdateStatus(id uint, status models.BookingStatus) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			s.bookings[i].UpdatedAt = time.Now()
			return s.bookings[i], nil
		}
	}
	return models.Booking{}, ErrNotFound
}

// BookingDelete удаляет бронирование
func (s *Store) BookingDelete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
