package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"carrental-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AdminLogin выполняет вход в админ-панель.
// Проверка нарочно имитационная: фиксированная задержка «обращения к серверу»
// и сверка с учетными данными из окружения, без пользовательской базы.
func AdminLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Неверный формат данных",
			})
			return
		}

		// Имитация задержки проверки учетных данных
		delayMs := 800
		if val, err := strconv.Atoi(os.Getenv("LOGIN_DELAY_MS")); err == nil && val >= 0 {
			delayMs = val
		}
		time.Sleep(time.Duration(delayMs) * time.Millisecond)

		adminEmail := os.Getenv("ADMIN_EMAIL")
		if adminEmail == "" {
			adminEmail = "admin@aerodrive.ma"
		}

		if req.Email != adminEmail || !checkAdminPassword(req.Password) {
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Неверный email или пароль",
			})
			return
		}

		token, err := utils.GenerateAdminJWT()
		if err != nil {
			log.Printf("Ошибка генерации токена: %v", err)
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Ошибка при создании токена",
			})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Success: true,
			Token:   token,
		})
	}
}

func checkAdminPassword(password string) bool {
	// Предпочитаем bcrypt-хэш, открытый пароль - запасной вариант для разработки
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	plain := os.Getenv("ADMIN_PASSWORD")
	if plain == "" {
		plain = "admin123"
	}
	return password == plain
}
