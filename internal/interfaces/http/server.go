package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	appTodo "github.com/taskboard/backend/internal/application/todo"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/log"
	"github.com/taskboard/backend/internal/infrastructure/websocket"
	"github.com/taskboard/backend/internal/interfaces/http/handler"
	"github.com/taskboard/backend/internal/interfaces/http/middleware"
	"github.com/taskboard/backend/internal/interfaces/mcp"

	_ "github.com/taskboard/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	todoHandler *handler.TodoHandler,
	eventsHandler *handler.EventsHandler,
	todoService *appTodo.Service,
	hub *websocket.Hub,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeaders(), middleware.CORS(cfg.CORS))
	router.Use(middleware.RequestID(), middleware.EnsureUTF8Body())

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	api := router.Group("/api/v1")
	{
		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.List)
			todos.POST("", todoHandler.Create)
			todos.DELETE("", todoHandler.Reset)
			todos.POST("/batch", todoHandler.CreateBatch)
			todos.GET("/stats", todoHandler.Stats)
			todos.GET("/overdue", todoHandler.Overdue)
			todos.GET("/events", eventsHandler.Subscribe)

			todos.GET("/:id", todoHandler.Get)
			todos.PUT("/:id", todoHandler.Update)
			todos.DELETE("/:id", todoHandler.Delete)
			todos.POST("/:id/done", todoHandler.MarkDone)
			todos.PUT("/:id/undone", todoHandler.MarkUndone)
		}
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":      "ok",
			"subscribers": hub.Count(),
		}
		if count, err := todoService.Count(); err == nil {
			status["todos"] = count
		}
		c.JSON(http.StatusOK, status)
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		server: &http.Server{
			Addr:              cfg.HTTPPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler 路由处理器（测试用）
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 启动服务器，Shutdown 之后返回 http.ErrServerClosed
func (s *HTTPServer) Start() error {
	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
