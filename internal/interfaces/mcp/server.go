package mcp

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	appTodo "github.com/taskboard/backend/internal/application/todo"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

const (
	serverName    = "taskboard"
	serverVersion = "0.1.0"
)

// MCPServer MCP 服务器
type MCPServer struct {
	server  *mcp.Server
	handler http.Handler
	todos   *appTodo.Service
	logger  *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(todoService *appTodo.Service) *MCPServer {
	// 创建 MCP 服务器实例
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil, // 使用默认能力
	)

	mcpServer := &MCPServer{
		server: server,
		todos:  todoService,
		logger: log.NewModuleLogger("mcp", "server"),
	}
	mcpServer.registerTodoTools()

	// 创建 SSE Handler
	mcpServer.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)
	return mcpServer
}

// registerTodoTools 注册待办相关工具
func (s *MCPServer) registerTodoTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list_todos",
		Description: `List todo items with optional filtering, sorting and pagination.
Parameters:
- page (int, optional): Zero-based page index, defaults to 0
- size (int, optional): Page size between 1 and 100, defaults to 10
- text (string, optional): Case-insensitive substring filter on the todo text
- status (string, optional): "done" or "pending"
- priority (string, optional): "LOW", "MEDIUM" or "HIGH"
- sort_by_due_date (string, optional): "asc" or "desc"; todos without a due date always come last
- sort_by_priority (string, optional): "asc" or "desc"

Returns: items of the requested page, total matching count and total pages.`,
	}, s.listTodosTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "create_todo",
		Description: `Create a todo item.
Parameters:
- text (string, required): Non-blank text, at most 120 characters
- priority (string, required): "LOW", "MEDIUM" or "HIGH"
- due_date (string, optional): Due date in RFC3339 format, e.g. 2026-06-01T18:00:00Z

Returns: the created todo with its assigned id.`,
	}, s.createTodoTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "mark_todo_done",
		Description: "Mark a pending todo as done and record the completion time. Parameters: id (int, required). Fails if the todo does not exist or is already done.",
	}, s.markTodoDoneTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "mark_todo_undone",
		Description: "Move a done todo back to pending and clear its completion time. Parameters: id (int, required). Fails if the todo does not exist or is not done.",
	}, s.markTodoUndoneTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_todo_statistics",
		Description: "Get the average completion time in whole minutes for done todos, per priority (LOW, MEDIUM, HIGH). Parameters: priority (string, optional) - restrict to one priority. A priority without done todos reports 0.",
	}, s.getTodoStatisticsTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_overdue_todos",
		Description: "List pending todos whose due date has already passed, ordered by id. No parameters required.",
	}, s.listOverdueTodosTool)
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Server 底层 MCP 服务器（用于直连 transport）
func (s *MCPServer) Server() *mcp.Server {
	return s.server
}
