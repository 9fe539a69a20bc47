package availability

import (
	"context"
	"os"
	"strconv"
	"time"

	"carrental-backend/internal/middleware"

	"github.com/go-redis/redis/v8"
)

// Result представляет результат проверки доступности локации.
// Проверка всегда успешна: это заглушка будущего сервиса доступности,
// отказов у нее нет.
type Result struct {
	LocationID string    `json:"location_id"`
	Available  bool      `json:"available"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Service имитирует внешний сервис проверки доступности пункта выдачи
type Service struct {
	delay time.Duration
	cache *CacheService
}

// NewService создает сервис проверки доступности.
// Задержка настраивается через AVAILABILITY_CHECK_DELAY_MS (по умолчанию 2000 мс).
func NewService(redisClient *redis.Client) *Service {
	delayMs := 2000
	if val, err := strconv.Atoi(os.Getenv("AVAILABILITY_CHECK_DELAY_MS")); err == nil && val >= 0 {
		delayMs = val
	}

	return &Service{
		delay: time.Duration(delayMs) * time.Millisecond,
		cache: NewCacheService(redisClient),
	}
}

// NewServiceWithDelay создает сервис с фиксированной задержкой (используется в тестах)
func NewServiceWithDelay(delay time.Duration) *Service {
	return &Service{
		delay: delay,
		cache: &CacheService{enabled: false},
	}
}

// Validate проверяет доступность пункта выдачи. Принимает любой идентификатор
// локации и всегда отвечает успехом после имитации задержки внешнего сервиса.
// Ошибка возможна только при отмене контекста.
func (s *Service) Validate(ctx context.Context, locationID string) (Result, error) {
	start := time.Now()

	// Сначала смотрим в кэш
	var cached Result
	key := s.cache.GenerateLocationKey(locationID)
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		middleware.TrackAvailabilityRequest("validate", "ok", true, time.Since(start))
		return cached, nil
	}

	// Имитируем обращение к внешнему сервису
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		middleware.TrackAvailabilityRequest("validate", "cancelled", false, time.Since(start))
		return Result{}, ctx.Err()
	}

	result := Result{
		LocationID: locationID,
		Available:  true,
		CheckedAt:  time.Now(),
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		// Кэш не критичен, продолжаем без него
		middleware.TrackAvailabilityRequest("validate", "ok", false, time.Since(start))
		return result, nil
	}

	middleware.TrackAvailabilityRequest("validate", "ok", false, time.Since(start))
	return result, nil
}
