package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	appTodo "github.com/taskboard/backend/internal/application/todo"
	domainTodo "github.com/taskboard/backend/internal/domain/todo"
)

// TodoOutput 工具返回的待办，时间字段为 RFC3339 字符串
type TodoOutput struct {
	ID           int64  `json:"id" jsonschema:"待办 ID"`
	Text         string `json:"text" jsonschema:"内容"`
	Priority     string `json:"priority" jsonschema:"LOW / MEDIUM / HIGH"`
	DueDate      string `json:"due_date,omitempty" jsonschema:"截止时间"`
	Done         bool   `json:"done" jsonschema:"是否已完成"`
	DoneDate     string `json:"done_date,omitempty" jsonschema:"完成时间"`
	CreationTime string `json:"creation_time" jsonschema:"创建时间"`
	Overdue      bool   `json:"overdue" jsonschema:"是否逾期"`
}

// ListTodosInput 列表工具输入
type ListTodosInput struct {
	Page           int    `json:"page,omitempty" jsonschema:"页码，从 0 开始"`
	Size           int    `json:"size,omitempty" jsonschema:"每页条数 1-100，默认 10"`
	Text           string `json:"text,omitempty" jsonschema:"内容包含（不区分大小写）"`
	Status         string `json:"status,omitempty" jsonschema:"done 或 pending"`
	Priority       string `json:"priority,omitempty" jsonschema:"LOW / MEDIUM / HIGH"`
	SortByDueDate  string `json:"sort_by_due_date,omitempty" jsonschema:"asc 或 desc"`
	SortByPriority string `json:"sort_by_priority,omitempty" jsonschema:"asc 或 desc"`
}

// ListTodosOutput 列表工具输出
type ListTodosOutput struct {
	Items      []TodoOutput `json:"items" jsonschema:"当前页待办"`
	Total      int          `json:"total" jsonschema:"过滤后的总数"`
	Page       int          `json:"page" jsonschema:"页码"`
	Size       int          `json:"size" jsonschema:"每页条数"`
	TotalPages int          `json:"total_pages" jsonschema:"总页数"`
}

// CreateTodoInput 创建工具输入
type CreateTodoInput struct {
	Text     string `json:"text" jsonschema:"待办内容，非空且不超过 120 个字符"`
	Priority string `json:"priority" jsonschema:"LOW / MEDIUM / HIGH"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"截止时间，RFC3339 格式"`
}

// TodoIDInput 按 ID 操作的工具输入
type TodoIDInput struct {
	ID int64 `json:"id" jsonschema:"待办 ID"`
}

// StatusOutput 状态切换输出
type StatusOutput struct {
	ID      int64 `json:"id" jsonschema:"待办 ID"`
	Success bool  `json:"success" jsonschema:"是否切换成功"`
}

// StatisticsInput 统计工具输入
type StatisticsInput struct {
	Priority string `json:"priority,omitempty" jsonschema:"只统计指定优先级"`
}

// StatisticsOutput 统计工具输出
type StatisticsOutput struct {
	Minutes map[string]int64 `json:"minutes" jsonschema:"各优先级平均完成耗时（分钟）"`
}

// OverdueInput 逾期工具输入（空输入）
type OverdueInput struct{}

// OverdueOutput 逾期工具输出
type OverdueOutput struct {
	Items []TodoOutput `json:"items" jsonschema:"逾期且未完成的待办"`
	Count int          `json:"count" jsonschema:"数量"`
}

// toTodoOutput 转换为工具输出
func toTodoOutput(dto *appTodo.TodoDTO) TodoOutput {
	out := TodoOutput{
		ID:           dto.ID,
		Text:         dto.Text,
		Priority:     dto.Priority,
		Done:         dto.Done,
		CreationTime: dto.CreationTime.Format(time.RFC3339),
		Overdue:      dto.Overdue,
	}
	if dto.DueDate != nil {
		out.DueDate = dto.DueDate.Format(time.RFC3339)
	}
	if dto.DoneDate != nil {
		out.DoneDate = dto.DoneDate.Format(time.RFC3339)
	}
	return out
}

func toTodoOutputs(dtos []*appTodo.TodoDTO) []TodoOutput {
	out := make([]TodoOutput, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, toTodoOutput(dto))
	}
	return out
}

// listTodosTool 列表查询
func (s *MCPServer) listTodosTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListTodosInput,
) (*mcp.CallToolResult, ListTodosOutput, error) {
	query := appTodo.NewListQueryDTO()
	query.Page = input.Page
	if input.Size != 0 {
		query.Size = input.Size
	}
	query.Text = input.Text
	query.Status = input.Status
	query.Priority = input.Priority
	query.DueDateSort = input.SortByDueDate
	query.PrioritySort = input.SortByPriority

	page, err := s.todos.ListItems(query)
	if err != nil {
		return nil, ListTodosOutput{}, s.toolError("list_todos", err)
	}
	return nil, ListTodosOutput{
		Items:      toTodoOutputs(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages,
	}, nil
}

// createTodoTool 创建待办
func (s *MCPServer) createTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CreateTodoInput,
) (*mcp.CallToolResult, TodoOutput, error) {
	dto := appTodo.CreateTodoDTO{
		Text:     input.Text,
		Priority: input.Priority,
	}
	if raw := strings.TrimSpace(input.DueDate); raw != "" {
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, TodoOutput{}, fmt.Errorf("%w: invalid due_date %q, expected RFC3339", domainTodo.ErrValidation, raw)
		}
		dto.DueDate = &due
	}

	created, err := s.todos.CreateItem(dto)
	if err != nil {
		return nil, TodoOutput{}, s.toolError("create_todo", err)
	}
	return nil, toTodoOutput(created), nil
}

// markTodoDoneTool 标记完成
func (s *MCPServer) markTodoDoneTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input TodoIDInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	ok, err := s.todos.MarkDone(input.ID)
	if err != nil {
		return nil, StatusOutput{}, s.toolError("mark_todo_done", err)
	}
	return nil, StatusOutput{ID: input.ID, Success: ok}, nil
}

// markTodoUndoneTool 取消完成
func (s *MCPServer) markTodoUndoneTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input TodoIDInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	ok, err := s.todos.MarkUndone(input.ID)
	if err != nil {
		return nil, StatusOutput{}, s.toolError("mark_todo_undone", err)
	}
	return nil, StatusOutput{ID: input.ID, Success: ok}, nil
}

// getTodoStatisticsTool 平均完成耗时
func (s *MCPServer) getTodoStatisticsTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input StatisticsInput,
) (*mcp.CallToolResult, StatisticsOutput, error) {
	if input.Priority != "" {
		p, minutes, err := s.todos.GetStatisticsFor(input.Priority)
		if err != nil {
			return nil, StatisticsOutput{}, s.toolError("get_todo_statistics", err)
		}
		return nil, StatisticsOutput{Minutes: map[string]int64{p.String(): minutes}}, nil
	}

	stats, err := s.todos.GetStatistics()
	if err != nil {
		return nil, StatisticsOutput{}, s.toolError("get_todo_statistics", err)
	}
	return nil, StatisticsOutput{Minutes: stats}, nil
}

// listOverdueTodosTool 逾期待办
func (s *MCPServer) listOverdueTodosTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input OverdueInput,
) (*mcp.CallToolResult, OverdueOutput, error) {
	items, err := s.todos.ListOverdue()
	if err != nil {
		return nil, OverdueOutput{}, s.toolError("list_overdue_todos", err)
	}
	return nil, OverdueOutput{Items: toTodoOutputs(items), Count: len(items)}, nil
}

// toolError 调用方错误原样返回，内部错误记录日志
func (s *MCPServer) toolError(tool string, err error) error {
	if !appTodo.IsClientError(err) {
		s.logger.Error("MCP tool failed",
			"tool", tool,
			"error", err,
		)
	}
	return err
}
