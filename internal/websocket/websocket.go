package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"carrental-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Константы для типов сообщений WebSocket
const (
	FleetPositionsUpdateType = "FLEET_POSITIONS_UPDATE"
	BookingConfirmedType     = "BOOKING_CONFIRMED"
	BookingStatusUpdateType  = "BOOKING_STATUS_UPDATE"
)

// WebSocketMessage представляет формат сообщения WebSocket
type WebSocketMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocketManager управляет всеми подключениями WebSocket
type WebSocketManager struct {
	clients    map[string]map[*websocket.Conn]bool
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	mutex      sync.RWMutex
}

// WebSocketClient представляет клиентское соединение WebSocket
type WebSocketClient struct {
	conn     *websocket.Conn
	clientID string
}

// Глобальный менеджер WebSocket
var wsManager = NewWebSocketManager()

// NewWebSocketManager создает новый менеджер WebSocket
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*websocket.Conn]bool),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}
}

// Start запускает обработку подключений WebSocket
func (manager *WebSocketManager) Start() {
	log.Printf("Запуск WebSocket Manager")
	go func() {
		for {
			select {
			case client := <-manager.register:
				manager.mutex.Lock()
				if _, ok := manager.clients[client.clientID]; !ok {
					manager.clients[client.clientID] = make(map[*websocket.Conn]bool)
				}
				manager.clients[client.clientID][client.conn] = true
				manager.mutex.Unlock()
				log.Printf("Клиент %s подключен", client.clientID)

			case client := <-manager.unregister:
				manager.mutex.Lock()
				if _, ok := manager.clients[client.clientID]; ok {
					if _, exists := manager.clients[client.clientID][client.conn]; exists {
						delete(manager.clients[client.clientID], client.conn)
						client.conn.Close()
					}
					if len(manager.clients[client.clientID]) == 0 {
						delete(manager.clients, client.clientID)
					}
				}
				manager.mutex.Unlock()
				log.Printf("Клиент %s отключен", client.clientID)
			}
		}
	}()
}

// Broadcast отправляет сообщение всем активным подключениям
func (manager *WebSocketManager) Broadcast(message *WebSocketMessage) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	jsonMessage, err := json.Marshal(message)
	if err != nil {
		log.Printf("Broadcast: Ошибка при кодировании сообщения: %v", err)
		return
	}

	for clientID, connections := range manager.clients {
		for conn := range connections {
			go func(id string, c *websocket.Conn) {
				if err := c.WriteMessage(websocket.TextMessage, jsonMessage); err != nil {
					log.Printf("Broadcast: Ошибка при отправке сообщения клиенту %s: %v", id, err)
					// Отключаем клиента при ошибке отправки
					manager.unregister <- &WebSocketClient{
						conn:     c,
						clientID: id,
					}
				}
			}(clientID, conn)
		}
	}
}

// Handler обрабатывает подключения WebSocket
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Проверяем, что это действительно запрос на установление WebSocket соединения
		if c.GetHeader("Upgrade") != "websocket" {
			c.String(http.StatusBadRequest, "Требуется WebSocket соединение")
			return
		}

		clientID := c.Query("client_id")
		if clientID == "" {
			clientID = fmt.Sprintf("anon_%d", time.Now().UnixNano())
		}

		wsUpgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Разрешаем подключения с любых источников
			},
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Ошибка обновления соединения до WebSocket: %v", err)
			c.String(http.StatusInternalServerError, "Не удалось установить WebSocket соединение")
			return
		}

		client := &WebSocketClient{
			conn:     conn,
			clientID: clientID,
		}

		wsManager.register <- client

		go handleMessages(client)
	}
}

// handleMessages обрабатывает сообщения от клиента
func handleMessages(client *WebSocketClient) {
	defer func() {
		wsManager.unregister <- client
	}()

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("Ошибка при чтении сообщения от клиента %s: %v", client.clientID, err)
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			log.Printf("Ошибка при разборе JSON: %v", err)
			continue
		}

		// Обрабатываем ping-сообщения
		if msgType, ok := data["type"].(string); ok && msgType == "ping" {
			pongMsg := map[string]interface{}{
				"type": "pong",
				"time": time.Now().Unix(),
			}
			pongJSON, _ := json.Marshal(pongMsg)
			if err := client.conn.WriteMessage(websocket.TextMessage, pongJSON); err != nil {
				log.Printf("Ошибка при отправке pong: %v", err)
			}
		}
	}
}

// SendFleetPositions отправляет свежий срез позиций автопарка всем подключениям
func SendFleetPositions(positions []models.VehiclePosition) {
	message := &WebSocketMessage{
		Type:    FleetPositionsUpdateType,
		Payload: positions,
	}
	wsManager.Broadcast(message)
}

// SendBookingConfirmed уведомляет о новом подтвержденном бронировании
func SendBookingConfirmed(booking models.BookingResponse) {
	message := &WebSocketMessage{
		Type:    BookingConfirmedType,
		Payload: booking,
	}
	wsManager.Broadcast(message)
}

// SendBookingStatusUpdate отправляет обновление статуса бронирования
func SendBookingStatusUpdate(bookingID uint, status models.BookingStatus) {
	payload := map[string]interface{}{
		"booking_id": bookingID,
		"status":     status,
	}
	message := &WebSocketMessage{
		Type:    BookingStatusUpdateType,
		Payload: payload,
	}
	wsManager.Broadcast(message)
}

// GetManager возвращает глобальный экземпляр менеджера WebSocket
func GetManager() *WebSocketManager {
	return wsManager
}
