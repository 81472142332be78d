package todo

import (
	"time"

	domainTodo "github.com/taskboard/backend/internal/domain/todo"
)

// DefaultPageSize 未指定 size 时的每页条数
const DefaultPageSize = 10

// CreateTodoDTO 创建待办请求
type CreateTodoDTO struct {
	Text     string     `json:"text" example:"buy milk"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Priority string     `json:"priority" example:"HIGH"`
}

// UpdateTodoDTO 更新待办请求（整体替换内容字段）
type UpdateTodoDTO struct {
	Text     string     `json:"text"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Priority string     `json:"priority"`
}

// ListQueryDTO 列表查询参数
type ListQueryDTO struct {
	Page         int    `form:"page" json:"page"`
	Size         int    `form:"size" json:"size"`
	Text         string `form:"text" json:"text,omitempty"`
	Status       string `form:"status" json:"status,omitempty"`
	Priority     string `form:"priority" json:"priority,omitempty"`
	DueDateSort  string `form:"sortByDueDate" json:"sortByDueDate,omitempty"`
	PrioritySort string `form:"sortByPriority" json:"sortByPriority,omitempty"`
}

// NewListQueryDTO 第 0 页、默认页大小
func NewListQueryDTO() ListQueryDTO {
	return ListQueryDTO{Page: 0, Size: DefaultPageSize}
}

// TodoDTO 待办响应
type TodoDTO struct {
	ID           int64      `json:"id"`
	Text         string     `json:"text"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Done         bool       `json:"done"`
	DoneDate     *time.Time `json:"doneDate,omitempty"`
	CreationTime time.Time  `json:"creationTime"`
	Overdue      bool       `json:"overdue"`
}

// PageDTO 分页响应
type PageDTO struct {
	Items      []*TodoDTO `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalPages int        `json:"totalPages"`
}

// StatisticsDTO 各优先级平均完成耗时（分钟），键为 LOW / MEDIUM / HIGH
type StatisticsDTO map[string]int64

// BatchErrorDTO 批量创建中单条失败的原因
type BatchErrorDTO struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchResultDTO 批量创建结果
type BatchResultDTO struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Items     []*TodoDTO      `json:"items"`
	Errors    []BatchErrorDTO `json:"errors,omitempty"`
}

// toDTO 转换为 DTO
func toDTO(item *domainTodo.TodoItem, now time.Time) *TodoDTO {
	return &TodoDTO{
		ID:           item.ID,
		Text:         item.Text,
		Priority:     item.Priority.String(),
		DueDate:      item.DueDate,
		Done:         item.Done,
		DoneDate:     item.DoneDate,
		CreationTime: item.CreationTime,
		Overdue:      item.IsOverdue(now),
	}
}

// toDTOs 批量转换
func toDTOs(items []*domainTodo.TodoItem, now time.Time) []*TodoDTO {
	out := make([]*TodoDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item, now))
	}
	return out
}

// toStatisticsDTO 转换统计结果，始终包含三个优先级
func toStatisticsDTO(stats domainTodo.Statistics) StatisticsDTO {
	out := make(StatisticsDTO, len(stats))
	for _, p := range domainTodo.Priorities() {
		out[p.String()] = stats[p]
	}
	return out
}

// toQuery 解析查询参数
func (q ListQueryDTO) toQuery() (domainTodo.Query, error) {
	status, err := domainTodo.ParseCompletion(q.Status)
	if err != nil {
		return domainTodo.Query{}, err
	}
	dueSort, err := domainTodo.ParseSortDirection(q.DueDateSort)
	if err != nil {
		return domainTodo.Query{}, err
	}
	prioritySort, err := domainTodo.ParseSortDirection(q.PrioritySort)
	if err != nil {
		return domainTodo.Query{}, err
	}

	var priority domainTodo.Priority
	if q.Priority != "" {
		if priority, err = domainTodo.ParsePriority(q.Priority); err != nil {
			return domainTodo.Query{}, err
		}
	}

	query := domainTodo.Query{
		Page:         q.Page,
		Size:         q.Size,
		Text:         q.Text,
		Status:       status,
		Priority:     priority,
		DueDateSort:  dueSort,
		PrioritySort: prioritySort,
	}
	return query, query.Validate()
}
