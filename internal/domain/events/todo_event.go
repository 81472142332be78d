package events

import "time"

// TodoEvent 待办变更事件
type TodoEvent struct {
	// EventType 事件类型
	EventType EventType
	// TodoID 待办 ID（清空事件为 0）
	TodoID int64
	// Payload 变更后的数据（删除事件为被删除的数据）
	Payload any
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *TodoEvent) Type() EventType {
	return e.EventType
}

// Timestamp 实现 Event 接口
func (e *TodoEvent) Timestamp() time.Time {
	return e.EventTime
}
