package handlers

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/models"
	"carrental-backend/internal/store"
	"carrental-backend/internal/websocket"

	"github.com/gin-gonic/gin"
)

// AdminBookingList возвращает список бронирований, опционально по статусу (админ)
func AdminBookingList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.BookingStatus(c.Query("status"))

		bookings := s.Bookings(status)
		out := make([]models.BookingResponse, len(bookings))
		for i := range bookings {
			out[i] = bookings[i].ToResponse()
		}
		c.JSON(http.StatusOK, out)
	}
}

// AdminBookingUpdateStatus переводит бронирование в новый статус (админ)
func AdminBookingUpdateStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		var req struct {
			Status models.BookingStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан статус"})
			return
		}

		switch req.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed,
			models.BookingStatusActive, models.BookingStatusCompleted,
			models.BookingStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный статус бронирования"})
			return
		}

		booking, err := s.BookingUpdateStatus(uint(id), req.Status)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бронирование не найдено"})
			return
		}

		websocket.SendBookingStatusUpdate(booking.ID, booking.Status)
		c.JSON(http.StatusOK, booking.ToResponse())
	}
}

// AdminBookingDelete удаляет бронирование (админ, требует подтверждения)
func AdminBookingDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireConfirm(c) {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		if err := s.BookingDelete(uint(id)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бронирование не найдено"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
