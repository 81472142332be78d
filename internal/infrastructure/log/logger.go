package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/taskboard/backend/internal/infrastructure/log/handler"
)

// 全局 logger 实例
var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	mu            sync.RWMutex
	output        io.Writer = os.Stdout
)

// Init 初始化日志系统
func Init(cfg *Config) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	level.Set(parseLevel(cfg.Level))

	// 级别使用 LevelVar，运行时可通过 SetLevel 调整
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	mu.Lock()
	defer mu.Unlock()

	// 根据格式选择处理器
	var logHandler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		logHandler = slog.NewJSONHandler(output, opts)
	case "text":
		logHandler = slog.NewTextHandler(output, opts)
	default:
		logHandler = handler.NewConsoleHandler(output, opts)
	}

	// 添加服务标识
	defaultLogger = slog.New(logHandler.WithAttrs([]slog.Attr{
		slog.String("service", "taskboard-backend"),
	}))

	slog.SetDefault(defaultLogger)
}

// SetOutput 设置日志输出目标（需在 Init 之前调用，测试使用）
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel 运行时调整日志级别
func SetLevel(lvl string) {
	level.Set(parseLevel(lvl))
}

// Level 当前日志级别
func Level() slog.Level {
	return level.Level()
}

// GetLogger 获取默认 logger
func GetLogger() *slog.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()

	if logger == nil {
		// 未初始化，使用默认配置
		Init(nil)
		mu.RLock()
		logger = defaultLogger
		mu.RUnlock()
	}
	return logger
}

// NewModuleLogger 为特定模块创建 logger
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// IsDebugMode 检查是否为调试模式
func IsDebugMode() bool {
	return level.Level() <= slog.LevelDebug
}

// parseLevel 解析日志级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
