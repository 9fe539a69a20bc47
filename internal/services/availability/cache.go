package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheService представляет сервис кэширования ответов проверки доступности локаций
type CacheService struct {
	redisClient *redis.Client
	ttl         time.Duration
	enabled     bool
}

// NewCacheService создает новый сервис кэширования
func NewCacheService(redisClient *redis.Client) *CacheService {
	// Проверяем, включено ли кэширование
	cacheEnabled := os.Getenv("CACHE_ENABLED") == "true"

	if !cacheEnabled || redisClient == nil {
		return &CacheService{
			enabled: false,
		}
	}

	// Получаем TTL для кэша
	cacheDuration := os.Getenv("AVAILABILITY_CACHE_DURATION")
	ttl := 300 // 5 минут по умолчанию

	if cacheDuration != "" {
		if val, err := strconv.Atoi(cacheDuration); err == nil {
			ttl = val
		}
	}

	return &CacheService{
		redisClient: redisClient,
		ttl:         time.Duration(ttl) * time.Second,
		enabled:     true,
	}
}

// Get получает данные из кэша
func (c *CacheService) Get(ctx context.Context, key string, result interface{}) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	val, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		// Ключ не найден в кэше
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("ошибка при получении данных из кэша: %w", err)
	}

	// Десериализуем данные из JSON
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("ошибка при десериализации данных из кэша: %w", err)
	}

	return true, nil
}

// Set сохраняет данные в кэш
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return nil
	}

	// Сериализуем данные в JSON
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации данных для кэша: %w", err)
	}

	// Сохраняем данные в Redis
	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при сохранении данных в кэш: %w", err)
	}

	return nil
}

// GenerateLocationKey генерирует ключ для кэша проверок доступности
func (c *CacheService) GenerateLocationKey(locationID string) string {
	return fmt.Sprintf("availability:%s", locationID)
}
