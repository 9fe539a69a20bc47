package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"carrental-backend/internal/models"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managerOnce sync.Once

func startTestManager() {
	managerOnce.Do(func() {
		GetManager().Start()
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws", Handler())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialWS(t *testing.T, srv *httptest.Server, clientID string) *gws.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?client_id=" + clientID
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClient(t *testing.T, clientID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		wsManager.mutex.RLock()
		defer wsManager.mutex.RUnlock()
		return len(wsManager.clients[clientID]) > 0
	}, time.Second, 5*time.Millisecond, "клиент %s не зарегистрировался", clientID)
}

func readMessage(t *testing.T, conn *gws.Conn) WebSocketMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg WebSocketMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHandlerRequiresUpgrade(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	startTestManager()
	srv := newTestServer(t)

	conn := dialWS(t, srv, "viewer-1")
	waitForClient(t, "viewer-1")

	// Срез позиций автопарка доходит до подписчика
	SendFleetPositions([]models.VehiclePosition{
		{VehicleID: 1, Speed: 42, Status: models.TrackingStatusMoving},
	})
	msg := readMessage(t, conn)
	assert.Equal(t, FleetPositionsUpdateType, msg.Type)

	positions, ok := msg.Payload.([]interface{})
	require.True(t, ok)
	require.Len(t, positions, 1)

	// Смена статуса бронирования доходит со своим типом и полезной нагрузкой
	SendBookingStatusUpdate(7, models.BookingStatusActive)
	msg = readMessage(t, conn)
	assert.Equal(t, BookingStatusUpdateType, msg.Type)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), payload["booking_id"])
	assert.Equal(t, string(models.BookingStatusActive), payload["status"])

	// Подтвержденное бронирование уходит тем же каналом
	SendBookingConfirmed(models.BookingResponse{ID: 3, Code: "#AERO-4812"})
	msg = readMessage(t, conn)
	assert.Equal(t, BookingConfirmedType, msg.Type)

	booking, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#AERO-4812", booking["code"])
}

func TestPingAnsweredWithPong(t *testing.T) {
	startTestManager()
	srv := newTestServer(t)

	conn := dialWS(t, srv, "viewer-2")
	waitForClient(t, "viewer-2")

	require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte(`{"type":"ping"}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var pong map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &pong))
	assert.Equal(t, "pong", pong["type"])
	assert.NotZero(t, pong["time"])
}
