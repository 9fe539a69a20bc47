package store

import (
	"time"

	"carrental-backend/internal/models"
)

// Clients возвращает копию списка клиентов
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// ClientCreate добавляет нового клиента
func (s *Store) ClientCreate(req models.ClientCreate) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := models.Client{
		ID:        s.nextClientID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextClientID++
	s.clients = append(s.clients, c)
	return c
}

// ClientUpdate обновляет поля клиента
func (s *Store) ClientUpdate(id uint, req models.ClientUpdate) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.clients {
		if s.clients[i].ID != id {
			continue
		}
		c := &s.clients[i]
		if req.FirstName != nil {
			c.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			c.LastName = *req.LastName
		}
		if req.Email != nil {
			c.Email = *req.Email
		}
		if req.Phone != nil {
			c.Phone = *req.Phone
		}
		c.UpdatedAt = time.Now()
		return *c, nil
	}
	return models.Client{}, ErrNotFound
}

// ClientDelete удаляет клиента
func (s *Store) ClientDelete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
