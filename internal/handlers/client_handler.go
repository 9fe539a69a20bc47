package handlers

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/models"
	"carrental-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// ClientList возвращает список клиентов (админ)
func ClientList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Clients())
	}
}

// ClientCreate добавляет клиента вручную (админ)
func ClientCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ClientCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}
		c.JSON(http.StatusCreated, s.ClientCreate(req))
	}
}

// ClientUpdate обновляет данные клиента (админ)
func ClientUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		var req models.ClientUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		client, err := s.ClientUpdate(uint(id), req)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Клиент не найден"})
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

// ClientDelete удаляет клиента (админ, требует подтверждения)
func ClientDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireConfirm(c) {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		if err := s.ClientDelete(uint(id)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Клиент не найден"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
