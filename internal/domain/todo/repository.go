package todo

import "time"

// Repository 待办事项仓储接口
// 所有返回的 *TodoItem 都是副本，修改后需通过 Save/Update 写回
type Repository interface {
	// FindByID 根据 ID 查找待办事项，不存在时返回 ErrNotFound
	FindByID(id int64) (*TodoItem, error)

	// Save 保存待办事项
	// ID 为 0 时分配新 ID，并在 CreationTime 为空时写入当前时间；不做内容校验
	Save(item *TodoItem) (*TodoItem, error)

	// Update 整体替换已存在的待办，保留原有 CreationTime
	// ID 为 0 或不存在时返回 false
	Update(item *TodoItem) (bool, error)

	// DeleteByID 删除并返回被删除的待办，不存在时返回 ErrNotFound
	DeleteByID(id int64) (*TodoItem, error)

	// DeleteAll 清空所有待办并重置 ID 计数器
	DeleteAll() error

	// FindAll 获取所有待办（按 ID 升序）
	FindAll() ([]*TodoItem, error)

	// FindCompletedByPriority 查询指定优先级的已完成待办（按 ID 升序）
	FindCompletedByPriority(priority Priority) ([]*TodoItem, error)

	// FindByDoneFlag 按完成状态查询（按 ID 升序）
	FindByDoneFlag(done bool) ([]*TodoItem, error)

	// FindByPriority 按优先级查询（按 ID 升序）
	FindByPriority(priority Priority) ([]*TodoItem, error)

	// FindOverdue 查询截止时间早于 now 且未完成的待办（按 ID 升序）
	FindOverdue(now time.Time) ([]*TodoItem, error)

	// Count 待办总数
	Count() (int, error)

	// DurationBetween 计算 a 到 b 的时长，b 早于 a 时返回 ErrInternal
	DurationBetween(a, b time.Time) (time.Duration, error)
}
