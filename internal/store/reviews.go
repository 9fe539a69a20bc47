package store

import (
	"time"

	"carrental-backend/internal/models"
)

// Reviews возвращает копию списка отзывов.
// При publishedOnly=true скрытые отзывы не попадают в выдачу (публичная часть сайта).
func (s *Store) Reviews(publishedOnly bool) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if publishedOnly && !r.Published {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ReviewCreate добавляет новый отзыв (по умолчанию не опубликован, ждет модерации)
func (s *Store) ReviewCreate(req models.ReviewCreate) models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	r := models.Review{
		ID:         s.nextReviewID,
		ClientName: req.ClientName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Published:  false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextReviewID++
	s.reviews = append(s.reviews, r)
	return r
}

// ReviewSetPublished публикует или скрывает отзыв
func (s *Store) ReviewSetPublished(id uint, published bool) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews[i].Published = published
			s.reviews[i].UpdatedAt = time.Now()
			return s.reviews[i], nil
		}
	}
	return models.Review{}, ErrNotFound
}

// ReviewDelete удаляет отзыв
func (s *Store) ReviewDelete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
