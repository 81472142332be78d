package todo

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// 分页大小限制
const (
	MinPageSize = 1
	MaxPageSize = 100
)

// Completion 完成状态过滤条件
type Completion string

const (
	// CompletionAny 不过滤
	CompletionAny Completion = ""
	// CompletionDone 仅已完成
	CompletionDone Completion = "done"
	// CompletionPending 仅未完成
	CompletionPending Completion = "pending"
)

// ParseCompletion 解析完成状态过滤条件（空字符串表示不过滤）
func ParseCompletion(s string) (Completion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CompletionAny, nil
	case "done":
		return CompletionDone, nil
	case "pending", "undone":
		return CompletionPending, nil
	default:
		return CompletionAny, fmt.Errorf("%w: unknown completion filter %q", ErrValidation, s)
	}
}

// SortDirection 排序方向
type SortDirection string

const (
	// SortNone 不按该字段排序
	SortNone SortDirection = ""
	// SortAsc 升序
	SortAsc SortDirection = "asc"
	// SortDesc 降序
	SortDesc SortDirection = "desc"
)

// ParseSortDirection 解析排序方向（空字符串表示不排序）
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortNone, nil
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("%w: unknown sort direction %q", ErrValidation, s)
	}
}

// Query 列表查询参数
type Query struct {
	Page         int           // 页码（从 0 开始）
	Size         int           // 每页条数 [1,100]
	Text         string        // 内容子串（不区分大小写），空表示不过滤
	Status       Completion    // 完成状态过滤
	Priority     Priority      // 优先级过滤，0 表示不过滤
	DueDateSort  SortDirection // 截止时间排序方向
	PrioritySort SortDirection // 优先级排序方向
}

// Validate 校验分页参数
func (q Query) Validate() error {
	if q.Page < 0 {
		return fmt.Errorf("%w: page must be >= 0, got %d", ErrValidation, q.Page)
	}
	if q.Size < MinPageSize || q.Size > MaxPageSize {
		return fmt.Errorf("%w: size must be between %d and %d, got %d", ErrValidation, MinPageSize, MaxPageSize, q.Size)
	}
	if q.Priority != 0 && !q.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority filter %d", ErrValidation, int(q.Priority))
	}
	return nil
}

// Page 分页结果
type Page struct {
	Items      []*TodoItem
	Total      int // 过滤后的总数
	Page       int
	Size       int
	TotalPages int
}

// Filter 过滤谓词
type Filter func(item *TodoItem) bool

// Comparator 比较函数，返回负数/0/正数
type Comparator func(a, b *TodoItem) int

// TextContains 内容包含子串（Unicode 大小写折叠后比较）
func TextContains(sub string) Filter {
	folder := cases.Fold()
	needle := folder.String(sub)
	return func(item *TodoItem) bool {
		return strings.Contains(folder.String(item.Text), needle)
	}
}

// StatusIs 完成状态相等
func StatusIs(status Completion) Filter {
	want := status == CompletionDone
	return func(item *TodoItem) bool {
		return item.Done == want
	}
}

// PriorityIs 优先级相等
func PriorityIs(priority Priority) Filter {
	return func(item *TodoItem) bool {
		return item.Priority == priority
	}
}

// Filters 按 文本 -> 完成状态 -> 优先级 的顺序组装过滤器，缺省参数不产生过滤器
func (q Query) Filters() []Filter {
	var filters []Filter
	if q.Text != "" {
		filters = append(filters, TextContains(q.Text))
	}
	if q.Status != CompletionAny {
		filters = append(filters, StatusIs(q.Status))
	}
	if q.Priority != 0 {
		filters = append(filters, PriorityIs(q.Priority))
	}
	return filters
}

// ByDueDate 按截止时间比较，无截止时间的总是排在最后（两个方向都一样）
func ByDueDate(dir SortDirection) Comparator {
	if dir == SortNone {
		return nil
	}
	return func(a, b *TodoItem) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		c := a.DueDate.Compare(*b.DueDate)
		if dir == SortDesc {
			return -c
		}
		return c
	}
}

// ByPriority 按优先级权重比较
func ByPriority(dir SortDirection) Comparator {
	if dir == SortNone {
		return nil
	}
	return func(a, b *TodoItem) int {
		c := ComparePriority(a.Priority, b.Priority)
		if dir == SortDesc {
			return -c
		}
		return c
	}
}

// ByID 按 ID 升序
func ByID(a, b *TodoItem) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// Chain 依次使用各比较器，忽略 nil
func Chain(comparators ...Comparator) Comparator {
	return func(a, b *TodoItem) int {
		for _, cmp := range comparators {
			if cmp == nil {
				continue
			}
			if c := cmp(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// Comparator 截止时间 -> 优先级 -> ID；两个方向都缺省时返回 nil（保持 ID 顺序）
func (q Query) Comparator() Comparator {
	if q.DueDateSort == SortNone && q.PrioritySort == SortNone {
		return nil
	}
	return Chain(ByDueDate(q.DueDateSort), ByPriority(q.PrioritySort), ByID)
}

// FilterItems 依次应用过滤器，返回新切片
func FilterItems(items []*TodoItem, filters ...Filter) []*TodoItem {
	out := make([]*TodoItem, 0, len(items))
next:
	for _, item := range items {
		for _, f := range filters {
			if !f(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// Paginate 截取第 page 页，页码超出总页数时返回空页
// 先比较页码再计算偏移，避免 page*size 溢出
func Paginate(items []*TodoItem, page, size int) []*TodoItem {
	if page < 0 || size <= 0 || page >= TotalPages(len(items), size) {
		return []*TodoItem{}
	}
	start := page * size
	end := min(start+size, len(items))
	return items[start:end]
}

// TotalPages 向上取整的总页数
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Apply 过滤 -> 排序 -> 分页
// snapshot 必须已按 ID 升序（仓储 FindAll 保证）
func Apply(snapshot []*TodoItem, q Query) *Page {
	items := FilterItems(snapshot, q.Filters()...)
	if cmp := q.Comparator(); cmp != nil {
		slices.SortStableFunc(items, cmp)
	}

	return &Page{
		Items:      Paginate(items, q.Page, q.Size),
		Total:      len(items),
		Page:       q.Page,
		Size:       q.Size,
		TotalPages: TotalPages(len(items), q.Size),
	}
}
