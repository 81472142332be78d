package storage

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/taskboard/backend/internal/domain/todo"
)

// initialTodoID ID 计数器初始值
const initialTodoID int64 = 1

// MemoryTodoRepository 待办事项内存仓储实现
// 读操作共享读锁，写操作独占写锁；锁内只做内存操作
type MemoryTodoRepository struct {
	mu     sync.RWMutex
	items  map[int64]*todo.TodoItem
	nextID int64
	now    func() time.Time
}

// NewMemoryTodoRepository 创建内存仓储
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		items:  make(map[int64]*todo.TodoItem),
		nextID: initialTodoID,
		now:    time.Now,
	}
}

// FindByID 根据 ID 查找待办事项
func (r *MemoryTodoRepository) FindByID(id int64) (*todo.TodoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", todo.ErrNotFound, id)
	}
	return item.Clone(), nil
}

// Save 保存待办事项，ID 分配与插入在同一把写锁内完成
func (r *MemoryTodoRepository) Save(item *todo.TodoItem) (*todo.TodoItem, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: todo is required", todo.ErrValidation)
	}

	stored := item.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored.ID == 0 {
		stored.ID = r.nextID
		r.nextID++
		if stored.CreationTime.IsZero() {
			stored.CreationTime = r.now()
		}
	} else if stored.ID >= r.nextID {
		// 显式 ID 也推进计数器，保证后续生成的 ID 不会冲突
		r.nextID = stored.ID + 1
	}

	r.items[stored.ID] = stored
	return stored.Clone(), nil
}

// Update 整体替换已存在的待办，保留原 CreationTime
func (r *MemoryTodoRepository) Update(item *todo.TodoItem) (bool, error) {
	if item == nil || item.ID == 0 {
		return false, nil
	}

	replacement := item.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[replacement.ID]
	if !ok {
		return false, nil
	}
	replacement.CreationTime = existing.CreationTime
	r.items[replacement.ID] = replacement
	return true, nil
}

// DeleteByID 删除并返回被删除的待办
func (r *MemoryTodoRepository) DeleteByID(id int64) (*todo.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", todo.ErrNotFound, id)
	}
	delete(r.items, id)
	return item, nil
}

// DeleteAll 清空并重置 ID 计数器
func (r *MemoryTodoRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[int64]*todo.TodoItem)
	r.nextID = initialTodoID
	return nil
}

// FindAll 获取所有待办（按 ID 升序）
func (r *MemoryTodoRepository) FindAll() ([]*todo.TodoItem, error) {
	return r.findWhere(func(*todo.TodoItem) bool { return true }), nil
}

// FindCompletedByPriority 查询指定优先级的已完成待办
func (r *MemoryTodoRepository) FindCompletedByPriority(priority todo.Priority) ([]*todo.TodoItem, error) {
	return r.findWhere(func(t *todo.TodoItem) bool {
		return t.Done && t.Priority == priority
	}), nil
}

// FindByDoneFlag 按完成状态查询
func (r *MemoryTodoRepository) FindByDoneFlag(done bool) ([]*todo.TodoItem, error) {
	return r.findWhere(func(t *todo.TodoItem) bool {
		return t.Done == done
	}), nil
}

// FindByPriority 按优先级查询
func (r *MemoryTodoRepository) FindByPriority(priority todo.Priority) ([]*todo.TodoItem, error) {
	return r.findWhere(func(t *todo.TodoItem) bool {
		return t.Priority == priority
	}), nil
}

// FindOverdue 查询已逾期且未完成的待办
func (r *MemoryTodoRepository) FindOverdue(now time.Time) ([]*todo.TodoItem, error) {
	return r.findWhere(func(t *todo.TodoItem) bool {
		return t.IsOverdue(now)
	}), nil
}

// Count 待办总数
func (r *MemoryTodoRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// DurationBetween 计算 a 到 b 的时长
func (r *MemoryTodoRepository) DurationBetween(a, b time.Time) (time.Duration, error) {
	return todo.DurationBetween(a, b)
}

// findWhere 在读锁内筛选并拷贝，结果按 ID 升序
func (r *MemoryTodoRepository) findWhere(match func(*todo.TodoItem) bool) []*todo.TodoItem {
	r.mu.RLock()
	result := make([]*todo.TodoItem, 0, len(r.items))
	for _, item := range r.items {
		if match(item) {
			result = append(result, item.Clone())
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(result, todo.ByID)
	return result
}

// 编译时检查接口实现
var _ todo.Repository = (*MemoryTodoRepository)(nil)
