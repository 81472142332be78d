package notification

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/taskboard/backend/internal/domain/events"
	"github.com/taskboard/backend/internal/infrastructure/log"
	"github.com/taskboard/backend/internal/infrastructure/websocket"
)

// Envelope 推送给订阅端的消息格式
type Envelope struct {
	Type      string    `json:"type"`
	TodoID    int64     `json:"todo_id,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WebSocketPusher 将待办事件推送到 WebSocket 订阅端
type WebSocketPusher struct {
	hub    *websocket.Hub
	logger *slog.Logger
}

// NewWebSocketPusher 创建 WebSocket 推送器
func NewWebSocketPusher(hub *websocket.Hub) *WebSocketPusher {
	return &WebSocketPusher{
		hub:    hub,
		logger: log.NewModuleLogger("notification", "pusher"),
	}
}

// HandleEvent 实现 events.Handler
func (p *WebSocketPusher) HandleEvent(event events.Event) error {
	todoEvent, ok := event.(*events.TodoEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	envelope := &Envelope{
		Type:      string(todoEvent.EventType),
		TodoID:    todoEvent.TodoID,
		Data:      todoEvent.Payload,
		Timestamp: todoEvent.EventTime,
	}
	if err := p.hub.Broadcast(envelope.Type, envelope); err != nil {
		return fmt.Errorf("failed to broadcast %s: %w", envelope.Type, err)
	}

	p.logger.Debug("Todo event pushed",
		"type", envelope.Type,
		"todo_id", envelope.TodoID,
		"subscribers", p.hub.Count(),
	)
	return nil
}

// 编译时检查接口实现
var _ events.Handler = (*WebSocketPusher)(nil)
