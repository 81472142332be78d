package wire

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/taskboard/backend/internal/domain/events"
	"github.com/taskboard/backend/internal/infrastructure/config"
	applog "github.com/taskboard/backend/internal/infrastructure/log"
	"github.com/taskboard/backend/internal/infrastructure/notification"
	"github.com/taskboard/backend/internal/infrastructure/watcher"
	"github.com/taskboard/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	MCPServer  *interfaces.MCPServer
	cfg        *config.Config
	eventBus   events.EventBus
	pusher     *notification.WebSocketPusher
	logger     *slog.Logger

	// 配置热更新
	configWatcher *watcher.ConfigWatcher
	unsubscribe   func()
	stopOnce      sync.Once

	// serverErr HTTP 服务器异常退出时的错误
	serverErr chan error
}

// NewApp 创建应用实例
func NewApp(
	cfg *config.Config,
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	eventBus events.EventBus,
	pusher *notification.WebSocketPusher,
) *App {
	return &App{
		HTTPServer: httpServer,
		MCPServer:  mcpServer,
		cfg:        cfg,
		eventBus:   eventBus,
		pusher:     pusher,
		logger:     applog.NewModuleLogger("app", "main"),
		serverErr:  make(chan error, 1),
	}
}

// Errors HTTP 服务器运行期间的致命错误，正常关闭时不会产生
func (a *App) Errors() <-chan error {
	return a.serverErr
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting taskboard backend application")

	// 注册事件订阅者
	a.setupEventSubscribers()

	// 配置文件热更新（失败不影响启动）
	a.startConfigWatcher()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
			a.serverErr <- err
		}
	}()

	// MCP 服务器通过 HTTP Handler 提供服务，已在 HTTP 服务器中注册 /mcp/sse 端点
	a.logger.Info("Taskboard backend application started successfully",
		"port", a.cfg.Server.HTTPPort,
		"storage", a.cfg.Storage.Driver,
	)
	return nil
}

// setupEventSubscribers 注册事件订阅者
func (a *App) setupEventSubscribers() {
	if a.eventBus == nil || a.pusher == nil {
		return
	}

	// WebSocket 推送订阅全部待办事件
	a.unsubscribe = a.eventBus.SubscribeMultiple(events.TodoEventTypes(), a.pusher)
	a.logger.Info("WebSocket pusher subscribed to todo events")
}

// startConfigWatcher 监听配置文件，变更时重新应用日志级别
func (a *App) startConfigWatcher() {
	path := a.cfg.Path()
	if path == "" {
		return
	}

	cw, err := watcher.NewConfigWatcher(path, watcher.DefaultDebounceDelay, a.reloadConfig)
	if err != nil {
		a.logger.Warn("Failed to create config watcher", "error", err)
		return
	}
	if err := cw.Start(); err != nil {
		cw.Stop()
		a.logger.Warn("Config hot reload disabled",
			"path", path,
			"error", err,
		)
		return
	}
	a.configWatcher = cw
}

// reloadConfig 重新加载配置，只有日志级别支持运行时生效
func (a *App) reloadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.Log.Level != "" {
		applog.SetLevel(cfg.Log.Level)
	}
	a.logger.Info("Config reloaded",
		"path", path,
		"log_level", applog.Level().String(),
	)
	return nil
}

// Stop 停止所有服务（Hub、事件总线、存储由 wire cleanup 释放）
func (a *App) Stop() error {
	var stopErr error
	a.stopOnce.Do(func() {
		a.logger.Info("Stopping taskboard backend application")

		if a.configWatcher != nil {
			a.configWatcher.Stop()
			a.logger.Info("Config watcher stopped")
		}

		if err := a.HTTPServer.Stop(); err != nil {
			a.logger.Error("Failed to stop HTTP server",
				"error", err,
			)
			stopErr = err
		}

		if a.unsubscribe != nil {
			a.unsubscribe()
		}

		a.logger.Info("Taskboard backend application stopped successfully")
	})
	return stopErr
}
