package handlers

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/models"
	"carrental-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// FleetList возвращает список автомобилей, опционально отфильтрованный по категории
func FleetList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := models.VehicleCategory(c.Query("category"))

		vehicles := s.Vehicles(category)
		out := make([]models.VehicleResponse, len(vehicles))
		for i := range vehicles {
			out[i] = vehicles[i].ToResponse()
		}
		c.JSON(http.StatusOK, out)
	}
}

// FleetGetByID возвращает автомобиль по идентификатору
func FleetGetByID(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		vehicle, err := s.VehicleByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}
		c.JSON(http.StatusOK, vehicle.ToResponse())
	}
}

// LocationsList возвращает список пунктов выдачи
func LocationsList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Locations())
	}
}

// OffersList возвращает список акционных предложений
func OffersList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Offers())
	}
}

// VehicleCreate добавляет новый автомобиль в автопарк (админ)
func VehicleCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VehicleCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		vehicle := s.VehicleCreate(req)
		c.JSON(http.StatusCreated, vehicle.ToResponse())
	}
}

// VehicleUpdate обновляет автомобиль (админ)
func VehicleUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		var req models.VehicleUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		vehicle, err := s.VehicleUpdate(uint(id), req)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}
		c.JSON(http.StatusOK, vehicle.ToResponse())
	}
}

// VehicleDelete удаляет автомобиль из автопарка (админ).
// Удаление необратимо, поэтому требуется явное подтверждение.
func VehicleDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireConfirm(c) {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		if err := s.VehicleDelete(uint(id)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// requireConfirm проверяет явное подтверждение необратимого действия.
// Без confirm=true удаление не выполняется, отмены после удаления нет.
func requireConfirm(c *gin.Context) bool {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Для удаления требуется подтверждение (confirm=true)"})
		return false
	}
	return true
}
