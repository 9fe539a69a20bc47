package handlers

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/models"
	"carrental-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// ReviewListPublic возвращает опубликованные отзывы для сайта
func ReviewListPublic(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Reviews(true))
	}
}

// ReviewCreate принимает новый отзыв с сайта (уходит на модерацию)
func ReviewCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReviewCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}
		c.JSON(http.StatusCreated, s.ReviewCreate(req))
	}
}

// ReviewListAll возвращает все отзывы, включая скрытые (админ)
func ReviewListAll(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Reviews(false))
	}
}

// ReviewSetPublished публикует или скрывает отзыв (админ)
func ReviewSetPublished(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		var req struct {
			Published *bool `json:"published" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан признак публикации"})
			return
		}

		review, err := s.ReviewSetPublished(uint(id), *req.Published)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Отзыв не найден"})
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

// ReviewDelete удаляет отзыв (админ, требует подтверждения)
func ReviewDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireConfirm(c) {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор"})
			return
		}

		if err := s.ReviewDelete(uint(id)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Отзыв не найден"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
