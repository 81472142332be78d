package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/taskboard/backend/internal/infrastructure/log"
	wsHub "github.com/taskboard/backend/internal/infrastructure/websocket"
)

const (
	// pingInterval 心跳间隔
	pingInterval = 30 * time.Second
	// pongWait 超过此时间未收到任何消息则断开
	pongWait = 2 * pingInterval
	// writeWait 单次写超时
	writeWait = 10 * time.Second
)

// EventsHandler 待办变更实时推送（WebSocket）
type EventsHandler struct {
	hub      *wsHub.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewEventsHandler 创建事件推送处理器
func NewEventsHandler(hub *wsHub.Hub) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		logger: log.NewModuleLogger("http", "events_handler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Subscribe 订阅待办变更
// @Summary 订阅待办变更（WebSocket）
// @Tags 待办
// @Param types query string false "逗号分隔的事件类型，例如 todo.created,todo.deleted；为空订阅全部"
// @Success 101
// @Router /todos/events [get]
func (h *EventsHandler) Subscribe(c *gin.Context) {
	var types []string
	if raw := c.Query("types"); raw != "" {
		types = strings.Split(raw, ",")
	}
	client := wsHub.NewConnection(uuid.New().String(), types)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已写入 HTTP 错误
		h.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	if !h.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down"))
		_ = conn.Close()
		return
	}

	h.logger.Info("subscriber connected",
		"conn_id", client.ID,
		"types", types,
	)

	done := make(chan struct{})
	go h.readPump(conn, client, done)
	h.writePump(conn, client, done)
}

// readPump 只处理控制帧和关闭，客户端消息忽略
func (h *EventsHandler) readPump(conn *websocket.Conn, client *wsHub.Connection, done chan struct{}) {
	defer func() {
		close(done)
		h.hub.Unregister(client)
	}()

	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("subscriber read error",
					"conn_id", client.ID,
					"error", err,
				)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump 推送消息并定时发送 Ping
func (h *EventsHandler) writePump(conn *websocket.Conn, client *wsHub.Connection, done chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		h.logger.Info("subscriber disconnected", "conn_id", client.ID)
	}()

	for {
		select {
		case <-done:
			return
		case message, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 已关闭该连接
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Warn("failed to write message",
					"conn_id", client.ID,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
