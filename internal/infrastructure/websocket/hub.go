package websocket

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/taskboard/backend/internal/infrastructure/log"
)

// sendBufferSize 每个连接的发送缓冲
const sendBufferSize = 64

// Hub WebSocket 连接管理中心
type Hub struct {
	// 全部订阅连接
	conns map[*Connection]struct{}
	// 注册连接
	register chan *Connection
	// 注销连接
	unregister chan *Connection
	// 广播消息
	broadcast chan *Message
	// 停止信号
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
	logger   *slog.Logger
}

// Connection WebSocket 连接
type Connection struct {
	// ID 连接标识（日志用）
	ID string
	// Types 订阅的事件类型，空表示全部
	Types map[string]struct{}
	// Send 待发送消息
	Send chan []byte
}

// NewConnection 创建连接，types 为空时订阅全部事件
func NewConnection(id string, types []string) *Connection {
	filter := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			filter[t] = struct{}{}
		}
	}
	return &Connection{
		ID:    id,
		Types: filter,
		Send:  make(chan []byte, sendBufferSize),
	}
}

// Accepts 连接是否订阅了该类型
func (c *Connection) Accepts(eventType string) bool {
	if len(c.Types) == 0 {
		return true
	}
	_, ok := c.Types[eventType]
	return ok
}

// Message 消息
type Message struct {
	Type string
	Data []byte
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message),
		done:       make(chan struct{}),
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行），Stop 后返回
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				close(conn.Send)
				delete(h.conns, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("Connection registered", "conn_id", conn.ID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("Connection unregistered", "conn_id", conn.ID)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.conns {
				if !conn.Accepts(msg.Type) {
					continue
				}
				select {
				case conn.Send <- msg.Data:
				default:
					// 消费过慢的连接直接断开
					close(conn.Send)
					delete(h.conns, conn)
					h.logger.Warn("Dropping slow connection", "conn_id", conn.ID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭全部连接
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register 注册连接，Hub 已停止时返回 false
func (h *Hub) Register(conn *Connection) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast 向订阅了该类型的连接广播消息
func (h *Hub) Broadcast(eventType string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- &Message{Type: eventType, Data: jsonData}:
	case <-h.done:
	}
	return nil
}

// Count 当前连接数
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
