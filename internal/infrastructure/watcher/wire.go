package watcher

import (
	"github.com/google/wire"
	"github.com/taskboard/backend/internal/domain/events"
)

// ProviderSet 事件分发 Provider 集合
var ProviderSet = wire.NewSet(
	ProvideEventBus,
	ProvidePublisher,
)

// ProvideEventBus 提供事件总线实例，cleanup 时关闭
func ProvideEventBus() (events.EventBus, func()) {
	bus := NewEventBus()
	return bus, bus.Close
}

// ProvidePublisher 应用层只依赖发布能力
func ProvidePublisher(bus events.EventBus) events.Publisher {
	return bus
}
