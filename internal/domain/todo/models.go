package todo

import (
	"fmt"
	"strings"
	"time"
)

// MaxTextLength 待办内容最大长度（字符数，含边界）
const MaxTextLength = 120

// Priority 待办优先级（封闭枚举，数值即排序权重）
type Priority int

const (
	// PriorityLow 低优先级
	PriorityLow Priority = iota + 1
	// PriorityMedium 中优先级
	PriorityMedium
	// PriorityHigh 高优先级
	PriorityHigh
)

// Priorities 返回全部优先级（按权重升序）
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid 是否为合法优先级
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Rank 排序权重：LOW=1, MEDIUM=2, HIGH=3
func (p Priority) Rank() int {
	return int(p)
}

// String 返回大写名称
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority 解析优先级名称（不区分大小写）
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow, nil
	case "MEDIUM":
		return PriorityMedium, nil
	case "HIGH":
		return PriorityHigh, nil
	default:
		return 0, fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
	}
}

// MarshalText 序列化为名称
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %d", ErrValidation, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText 从名称反序列化
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ComparePriority 按权重比较两个优先级
func ComparePriority(a, b Priority) int {
	return a.Rank() - b.Rank()
}

// TodoItem 待办事项实体
type TodoItem struct {
	ID           int64      // 唯一标识，由仓储分配
	Text         string     // 待办内容
	Priority     Priority   // 优先级
	DueDate      *time.Time // 截止时间（可选）
	Done         bool       // 是否完成
	DoneDate     *time.Time // 完成时间，仅在 Done 为 true 时存在
	CreationTime time.Time  // 创建时间，首次保存时写入
}

// MarkDone 标记为完成
func (t *TodoItem) MarkDone(at time.Time) {
	t.Done = true
	t.DoneDate = &at
}

// MarkUndone 标记为未完成
func (t *TodoItem) MarkUndone() {
	t.Done = false
	t.DoneDate = nil
}

// IsOverdue 已设置截止时间、截止时间早于 now 且未完成
func (t *TodoItem) IsOverdue(now time.Time) bool {
	return !t.Done && t.DueDate != nil && t.DueDate.Before(now)
}

// Clone 深拷贝，避免调用方与仓储内部状态共享指针
func (t *TodoItem) Clone() *TodoItem {
	if t == nil {
		return nil
	}
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.DoneDate != nil {
		d := *t.DoneDate
		c.DoneDate = &d
	}
	return &c
}
