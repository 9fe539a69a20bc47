package routes

import (
	"carrental-backend/internal/handlers"
	"carrental-backend/internal/middleware"
	"carrental-backend/internal/simulation"
	"carrental-backend/internal/store"
	"carrental-backend/internal/wizard"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(api *gin.RouterGroup, s *store.Store, m *wizard.Manager, sim *simulation.Simulator) {
	// Публичный маршрут для входа в админ-панель
	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.AdminLogin())
	}

	// Публичная часть сайта: каталог, предложения, отзывы
	api.GET("/fleet", handlers.FleetList(s))
	api.GET("/fleet/:id", handlers.FleetGetByID(s))
	api.GET("/locations", handlers.LocationsList(s))
	api.GET("/offers", handlers.OffersList(s))
	api.GET("/reviews", handlers.ReviewListPublic(s))
	api.POST("/reviews", handlers.ReviewCreate(s))

	// Мастер бронирования
	booking := api.Group("/booking")
	{
		booking.POST("/open", handlers.BookingOpen(s, m))
		booking.GET("/:id", handlers.BookingGet(m))
		booking.POST("/:id/vehicle", handlers.BookingSelectVehicle(s, m))
		booking.POST("/:id/details", handlers.BookingSubmitDetails(m))
		booking.POST("/:id/back", handlers.BookingBack(m))
		booking.POST("/:id/submit", handlers.BookingSubmit(m))
		booking.PUT("/:id/location", handlers.BookingSetLocation(m))
		booking.POST("/:id/confirm", handlers.BookingConfirmLocation(m))
		booking.DELETE("/:id", handlers.BookingClose(m))
	}

	// Отслеживание: позиции автопарка и доставка по коду бронирования
	tracking := api.Group("/tracking")
	{
		tracking.GET("/fleet", handlers.FleetPositions(sim))
		tracking.GET("/delivery/:code", handlers.DeliveryStatus(s))
	}

	// Защищенные маршруты админ-панели
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth())
	{
		// Управление автопарком
		admin.POST("/vehicles", handlers.VehicleCreate(s))
		admin.PUT("/vehicles/:id", handlers.VehicleUpdate(s))
		admin.DELETE("/vehicles/:id", handlers.VehicleDelete(s))

		// Управление бронированиями
		admin.GET("/bookings", handlers.AdminBookingList(s))
		admin.PUT("/bookings/:id/status", handlers.AdminBookingUpdateStatus(s))
		admin.DELETE("/bookings/:id", handlers.AdminBookingDelete(s))

		// Управление клиентами
		admin.GET("/clients", handlers.ClientList(s))
		admin.POST("/clients", handlers.ClientCreate(s))
		admin.PUT("/clients/:id", handlers.ClientUpdate(s))
		admin.DELETE("/clients/:id", handlers.ClientDelete(s))

		// Модерация отзывов
		admin.GET("/reviews", handlers.ReviewListAll(s))
		admin.PUT("/reviews/:id/published", handlers.ReviewSetPublished(s))
		admin.DELETE("/reviews/:id", handlers.ReviewDelete(s))

		// Аналитика
		admin.GET("/analytics", handlers.AnalyticsOverview(s))
	}
}
