package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ANSI 颜色代码
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

// ConsoleHandler 控制台日志处理器（彩色输出）
// module/component 属性显示为前缀，其余属性逐行缩进输出
type ConsoleHandler struct {
	opts  *slog.HandlerOptions
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

// NewConsoleHandler 创建控制台处理器
func NewConsoleHandler(out io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{
		out:  out,
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

// Enabled 检查日志级别是否启用
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := h.opts.Level
	if minLevel == nil {
		return level >= slog.LevelInfo
	}
	return level >= minLevel.Level()
}

// Handle 处理日志记录
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		attrs = append(attrs, a)
		return true
	})

	// 提取模块和组件信息
	var module, component string
	for _, a := range attrs {
		switch a.Key {
		case "module":
			module = a.Value.String()
		case "component":
			component = a.Value.String()
		}
	}

	modulePrefix := ""
	if module != "" && component != "" {
		modulePrefix = fmt.Sprintf(" [%s/%s]", module, component)
	} else if module != "" {
		modulePrefix = fmt.Sprintf(" [%s]", module)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.out, "%s%s%s %s%s %s\n",
		levelColor(r.Level), r.Level.String(), colorReset,
		r.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		modulePrefix,
		r.Message,
	)

	for _, a := range attrs {
		// 跳过已在前缀中显示的信息
		if a.Key == "module" || a.Key == "component" || a.Key == "service" {
			continue
		}
		fmt.Fprintf(h.out, "  %s=%v\n", a.Key, a.Value)
	}

	return nil
}

// WithAttrs 返回带有额外属性的处理器
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup 返回带有分组的处理器
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

// levelColor 返回日志级别对应的颜色
func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
