package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal - общее количество запросов
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration - длительность запросов
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequestsInFlight - количество запросов в обработке
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Текущее количество запросов в обработке",
		},
	)

	// AvailabilityRequestsTotal - общее количество проверок доступности локаций
	AvailabilityRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_requests_total",
			Help: "Общее количество проверок доступности пунктов выдачи",
		},
		[]string{"endpoint", "status", "cached"},
	)

	// AvailabilityRequestDuration - длительность проверок доступности
	AvailabilityRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "availability_request_duration_seconds",
			Help:    "Длительность проверок доступности в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "cached"},
	)

	// BookingsConfirmedTotal - количество подтвержденных бронирований
	BookingsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Общее количество подтвержденных бронирований",
		},
	)

	// SimulationTicksTotal - количество тиков симуляции GPS
	SimulationTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "simulation_ticks_total",
			Help: "Общее количество тиков симуляции позиций автопарка",
		},
	)
)

// PrometheusMiddleware собирает метрики для HTTP запросов
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Увеличиваем счетчик запросов в обработке
		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		// Фиксируем время начала запроса
		start := time.Now()

		// Обрабатываем запрос
		c.Next()

		// Вычисляем длительность запроса
		duration := time.Since(start).Seconds()

		// Получаем статус код и эндпоинт
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		// Увеличиваем счетчик запросов
		RequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()

		// Добавляем длительность запроса
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// TrackAvailabilityRequest отслеживает обращение к сервису проверки доступности
func TrackAvailabilityRequest(endpoint string, status string, cached bool, duration time.Duration) {
	cachedStr := strconv.FormatBool(cached)
	AvailabilityRequestsTotal.WithLabelValues(endpoint, status, cachedStr).Inc()
	AvailabilityRequestDuration.WithLabelValues(endpoint, cachedStr).Observe(duration.Seconds())
}
