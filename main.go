package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrental-backend/internal/middleware"
	"carrental-backend/internal/models"
	"carrental-backend/internal/routes"
	"carrental-backend/internal/services/availability"
	"carrental-backend/internal/simulation"
	"carrental-backend/internal/store"
	"carrental-backend/internal/websocket"
	"carrental-backend/internal/wizard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// connectToRedis устанавливает соединение с Redis
func connectToRedis() (*redis.Client, error) {
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		redisHost = "localhost"
	}
	if redisPort == "" {
		redisPort = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     redisPassword,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Проверяем подключение к Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return rdb, nil
}

func main() {
	// Устанавливаем режим релиза для продакшена
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	// Все данные живут в памяти и инициализируются при старте
	dataStore := store.NewStore()

	// Подключение к Redis (нужен только для кэша проверок доступности)
	var redisClient *redis.Client
	if client, err := connectToRedis(); err != nil {
		log.Println("Предупреждение: Redis недоступен, продолжаем без кэширования:", err)
	} else {
		log.Println("Успешное подключение к Redis")
		redisClient = client
		defer redisClient.Close()
	}

	// Сервис проверки доступности пунктов выдачи (имитация внешнего сервиса)
	availabilityService := availability.NewService(redisClient)

	// Запускаем WebSocket менеджер
	websocket.GetManager().Start()

	// Менеджер мастера бронирования: подтвержденные бронирования попадают
	// в хранилище и рассылаются подписчикам
	bookingManager := wizard.NewManager(availabilityService, dataStore.DefaultLocationID(), func(conf wizard.Confirmation) {
		booking := dataStore.BookingAdd(models.Booking{
			Code:        conf.Code,
			VehicleID:   conf.VehicleID,
			VehicleName: conf.VehicleName,
			Location:    conf.Location,
			PickupDate:  conf.PickupDate,
			ReturnDate:  conf.ReturnDate,
			Guest:       conf.Guest,
			Total:       conf.Total,
			Status:      models.BookingStatusConfirmed,
		})
		middleware.BookingsConfirmedTotal.Inc()
		websocket.SendBookingConfirmed(booking.ToResponse())
		log.Printf("Бронирование подтверждено: %s (%s)", booking.Code, booking.VehicleName)
	})

	// Симуляция позиций автопарка: кольцевой маршрут в аэропорт для первого
	// выданного автомобиля, городской режим для остальных
	depot := models.Location{Latitude: 33.5883, Longitude: -7.6114}
	highwayRoute := simulation.Route{
		Start: models.Location{Latitude: 33.5731, Longitude: -7.6890},
		End:   models.Location{Latitude: 33.3675, Longitude: -7.5898},
		Steps: 180,
	}
	fleet := simulation.FleetFromVehicles(dataStore.Vehicles(""), depot, highwayRoute)
	simulator := simulation.NewSimulator(fleet, time.Second, websocket.SendFleetPositions)
	simulator.Start()

	// Создаем Gin роутер
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Добавляем middleware для сбора метрик
	r.Use(middleware.PrometheusMiddleware())

	// Настройка доверенных прокси
	r.SetTrustedProxies([]string{"127.0.0.1"})

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статическая директория для изображений автопарка
	r.Static("/images", "./images")

	// Добавляем эндпоинт для метрик Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Проверка работоспособности системы
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API группа
	api := r.Group("/api")

	// Настраиваем маршруты
	routes.SetupRoutes(api, dataStore, bookingManager, simulator)

	// WebSocket для живых позиций автопарка и статусов бронирований
	r.GET("/ws", websocket.Handler())

	// Получаем порт из переменных окружения
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Создаем HTTP сервер с настроенными таймаутами
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Сервер запущен на порту %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска сервера: %s", err)
		}
	}()

	// Ожидаем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Получен сигнал завершения, закрываем соединения...")

	// Останавливаем симуляцию, чтобы таймер не пережил сервер
	simulator.Stop()

	// Даем 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Ошибка при graceful shutdown: %s", err)
	}

	log.Println("Сервер корректно завершил работу")
}
