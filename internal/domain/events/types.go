// Package events 定义领域事件类型和接口
// 待办变更通过事件总线分发给 WebSocket 推送等订阅者
package events

import "time"

// EventType 事件类型标识
type EventType string

// 待办相关事件类型
const (
	// TodoCreated 待办创建
	TodoCreated EventType = "todo.created"
	// TodoUpdated 待办内容更新
	TodoUpdated EventType = "todo.updated"
	// TodoDeleted 待办删除
	TodoDeleted EventType = "todo.deleted"
	// TodoCompleted 待办标记完成
	TodoCompleted EventType = "todo.completed"
	// TodoReopened 待办取消完成
	TodoReopened EventType = "todo.reopened"
	// TodosCleared 全部待办被清空
	TodosCleared EventType = "todo.cleared"
)

// TodoEventTypes 全部待办事件类型
func TodoEventTypes() []EventType {
	return []EventType{TodoCreated, TodoUpdated, TodoDeleted, TodoCompleted, TodoReopened, TodosCleared}
}

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
