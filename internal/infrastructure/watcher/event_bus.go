// Package watcher 提供配置文件监听和事件分发功能
package watcher

import (
	"log/slog"
	"sync"

	"github.com/taskboard/backend/internal/domain/events"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

// subscription 一个订阅对应一个投递 goroutine，按发布顺序处理队列中的事件
type subscription struct {
	id      uint64
	types   []events.EventType
	handler events.Handler

	mu     sync.Mutex
	queue  []events.Event
	notify chan struct{}
	done   chan struct{}
	stop   sync.Once
}

func newSubscription(id uint64, types []events.EventType, handler events.Handler) *subscription {
	return &subscription{
		id:      id,
		types:   types,
		handler: handler,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// enqueue 追加事件并唤醒投递 goroutine，不阻塞发布方
func (s *subscription) enqueue(event events.Event) {
	s.mu.Lock()
	s.queue = append(s.queue, event)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// next 取出队首事件
func (s *subscription) next() (events.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	event := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return event, true
}

// close 通知投递 goroutine 处理完剩余事件后退出
func (s *subscription) close() {
	s.stop.Do(func() { close(s.done) })
}

// eventBusImpl EventBus 的实现
type eventBusImpl struct {
	// handlers 按事件类型存储的订阅列表
	handlers map[events.EventType][]*subscription
	// subs 按订阅 ID 索引
	subs map[uint64]*subscription
	// nextID 下一个订阅 ID
	nextID uint64
	// mu 保护 handlers 的互斥锁
	mu sync.RWMutex
	// logger 日志记录器
	logger *slog.Logger
	// closed 是否已关闭
	closed bool
	// wg 等待所有投递 goroutine 退出
	wg sync.WaitGroup
}

// NewEventBus 创建新的事件总线实例
func NewEventBus() events.EventBus {
	return &eventBusImpl{
		handlers: make(map[events.EventType][]*subscription),
		subs:     make(map[uint64]*subscription),
		logger:   log.NewModuleLogger("watcher", "event_bus"),
	}
}

// Subscribe 订阅特定类型的事件
func (b *eventBusImpl) Subscribe(eventType events.EventType, handler events.Handler) func() {
	return b.subscribe([]events.EventType{eventType}, handler)
}

// SubscribeMultiple 订阅多个类型的事件
// 多个类型共用一个订阅，不同类型的事件之间也保持发布顺序
func (b *eventBusImpl) SubscribeMultiple(eventTypes []events.EventType, handler events.Handler) func() {
	return b.subscribe(eventTypes, handler)
}

func (b *eventBusImpl) subscribe(eventTypes []events.EventType, handler events.Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || len(eventTypes) == 0 {
		return func() {}
	}

	b.nextID++
	s := newSubscription(b.nextID, append([]events.EventType(nil), eventTypes...), handler)
	for _, eventType := range s.types {
		b.handlers[eventType] = append(b.handlers[eventType], s)
	}
	b.subs[s.id] = s

	b.wg.Add(1)
	go b.deliver(s)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(s.id) })
	}
}

// unsubscribe 按订阅 ID 取消订阅，已入队的事件仍会投递
func (b *eventBusImpl) unsubscribe(id uint64) {
	b.mu.Lock()
	s, ok := b.subs[id]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subs, id)

	for _, eventType := range s.types {
		subs := b.handlers[eventType]
		remaining := make([]*subscription, 0, len(subs))
		for _, other := range subs {
			if other.id != id {
				remaining = append(remaining, other)
			}
		}
		if len(remaining) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = remaining
		}
	}
	b.mu.Unlock()

	s.close()
}

// subscriberCount 某类事件的订阅数
func (b *eventBusImpl) subscriberCount(eventType events.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish 异步发布事件
// 入队在读锁内完成，同一订阅者按发布顺序收到事件
func (b *eventBusImpl) Publish(event events.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	subs := b.handlers[event.Type()]
	if len(subs) == 0 {
		return
	}

	b.logger.Debug("Publishing event",
		"type", event.Type(),
		"handlers_count", len(subs),
	)

	for _, s := range subs {
		s.enqueue(event)
	}
}

// deliver 订阅的投递循环
func (b *eventBusImpl) deliver(s *subscription) {
	defer b.wg.Done()

	for {
		select {
		case <-s.notify:
			b.drain(s)
		case <-s.done:
			b.drain(s)
			return
		}
	}
}

// drain 依次处理队列中的全部事件
func (b *eventBusImpl) drain(s *subscription) {
	for {
		event, ok := s.next()
		if !ok {
			return
		}
		b.dispatchToHandler(event, s.handler)
	}
}

// dispatchToHandler 分发事件到单个处理器
func (b *eventBusImpl) dispatchToHandler(event events.Event, handler events.Handler) {
	// 捕获 panic，防止单个处理器崩溃影响后续事件
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Handler panicked",
				"type", event.Type(),
				"panic", r,
			)
		}
	}()

	if err := handler.HandleEvent(event); err != nil {
		b.logger.Error("Handler returned error",
			"type", event.Type(),
			"error", err,
		)
	}
}

// Close 关闭事件总线
func (b *eventBusImpl) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.subs = make(map[uint64]*subscription)
	b.handlers = make(map[events.EventType][]*subscription)
	b.mu.Unlock()

	for _, s := range subs {
		s.close()
	}

	// 等待已入队的事件处理完成
	b.wg.Wait()

	b.logger.Info("Event bus closed")
}
