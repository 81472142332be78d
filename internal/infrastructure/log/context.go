package log

import (
	"context"
	"log/slog"
)

// contextKey 上下文键类型，避免与其他包冲突
type contextKey string

// 上下文键定义
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID contextKey = "request_id"

	// TodoContextID 待办 ID
	TodoContextID contextKey = "todo_id"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithTodoID 在上下文中添加待办 ID
func WithTodoID(ctx context.Context, todoID int64) context.Context {
	return context.WithValue(ctx, TodoContextID, todoID)
}

// RequestIDFromContext 读取请求 ID
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestContextID).(string); ok {
		return v
	}
	return ""
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if requestID, ok := ctx.Value(RequestContextID).(string); ok {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if todoID, ok := ctx.Value(TodoContextID).(int64); ok {
		attrs = append(attrs, slog.Int64("todo_id", todoID))
	}

	return attrs
}

// FromContext 返回带上下文字段的 logger
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := LogCtxFromContext(ctx)
	if len(attrs) == 0 {
		return logger
	}
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return logger.With(args...)
}
