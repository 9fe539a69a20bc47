package handlers

import (
	"errors"
	"net/http"

	"carrental-backend/internal/models"
	"carrental-backend/internal/store"
	"carrental-backend/internal/wizard"

	"github.com/gin-gonic/gin"
)

// BookingOpen открывает новую сессию мастера бронирования.
// Если передан vehicle_id, мастер открывается сразу на шаге контактных данных.
func BookingOpen(s *store.Store, m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			VehicleID  *uint  `json:"vehicle_id"`
			Location   string `json:"location"`
			PickupDate string `json:"pickup_date"`
			ReturnDate string `json:"return_date"`
		}

		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		init := wizard.InitialData{
			Location:   req.Location,
			PickupDate: req.PickupDate,
			ReturnDate: req.ReturnDate,
		}

		if req.VehicleID != nil {
			vehicle, err := s.VehicleByID(*req.VehicleID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
				return
			}
			init.Vehicle = &vehicle
		}

		session := m.Open(init)
		c.JSON(http.StatusCreated, session.Snapshot())
	}
}

// BookingGet возвращает текущее состояние сессии мастера
func BookingGet(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingSelectVehicle фиксирует выбор автомобиля на первом шаге мастера
func BookingSelectVehicle(s *store.Store, m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		var req struct {
			VehicleID uint `json:"vehicle_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не выбран автомобиль"})
			return
		}

		vehicle, err := s.VehicleByID(req.VehicleID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}

		if err := session.SelectVehicle(&vehicle); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingSubmitDetails сохраняет контактные данные гостя.
// Поля не валидируются по содержимому, как и в исходной форме.
func BookingSubmitDetails(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		var req struct {
			Guest      models.GuestInfo `json:"guest"`
			PickupDate string           `json:"pickup_date"`
			ReturnDate string           `json:"return_date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		if err := session.SubmitDetails(req.Guest, req.PickupDate, req.ReturnDate); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingBack возвращает мастер на предыдущий шаг
func BookingBack(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		if err := session.Back(); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingSubmit отправляет заявку на бронирование (шаг проверки -> ожидание локации)
func BookingSubmit(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		if err := session.SubmitReservation(); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingSetLocation меняет пункт выдачи на шаге подтверждения локации
func BookingSetLocation(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		var req struct {
			Location string `json:"location" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан пункт выдачи"})
			return
		}

		if err := session.SetLocation(req.Location); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// BookingConfirmLocation запускает проверку доступности пункта выдачи.
// Ответ возвращается сразу: клиент опрашивает состояние сессии, пока
// is_validating не снимется и мастер не перейдет на терминальный шаг.
func BookingConfirmLocation(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}

		if err := session.ConfirmLocation(); err != nil {
			respondWizardError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, session.Snapshot())
	}
}

// BookingClose закрывает сессию мастера, черновик отбрасывается
func BookingClose(m *wizard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Close(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия бронирования не найдена"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func respondWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrVehicleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не выбран автомобиль"})
	case errors.Is(err, wizard.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Переход недоступен на текущем шаге"})
	case errors.Is(err, wizard.ErrAlreadyValidating):
		c.JSON(http.StatusConflict, gin.H{"error": "Проверка локации уже выполняется"})
	case errors.Is(err, wizard.ErrSessionClosed):
		c.JSON(http.StatusGone, gin.H{"error": "Сессия бронирования закрыта"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка"})
	}
}
