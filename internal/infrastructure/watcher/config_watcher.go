package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

// DefaultDebounceDelay 默认防抖延迟
const DefaultDebounceDelay = 300 * time.Millisecond

// ReloadFunc 配置文件变化后的回调
type ReloadFunc func(path string) error

// ConfigWatcher 配置文件监听器
// 监听文件所在目录，编辑器原子替换（rename）也能被捕获
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange ReloadFunc
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// 防抖相关
	timer   *time.Timer
	timerMu sync.Mutex

	// 控制
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher(path string, debounce time.Duration, onChange ReloadFunc) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}

	return &ConfigWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		logger:   log.NewModuleLogger("watcher", "config_watcher"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start 启动监听
func (cw *ConfigWatcher) Start() error {
	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}

	cw.logger.Info("Starting config watcher",
		"path", cw.path,
		"debounce", cw.debounce,
	)

	cw.wg.Add(1)
	go cw.watchLoop()
	return nil
}

// Stop 停止监听，可重复调用
func (cw *ConfigWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		cw.watcher.Close()
		cw.wg.Wait()

		cw.timerMu.Lock()
		if cw.timer != nil {
			cw.timer.Stop()
		}
		cw.timerMu.Unlock()

		cw.logger.Info("Config watcher stopped")
	})
}

// watchLoop 事件监听循环
func (cw *ConfigWatcher) watchLoop() {
	defer cw.wg.Done()

	for {
		select {
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleFsEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("Watcher error", "error", err)
		}
	}
}

// handleFsEvent 只关心目标文件的写入和创建
func (cw *ConfigWatcher) handleFsEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	// 取消之前的定时器
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, cw.reload)
}

// reload 执行回调
func (cw *ConfigWatcher) reload() {
	select {
	case <-cw.stopCh:
		return
	default:
	}

	if err := cw.onChange(cw.path); err != nil {
		cw.logger.Warn("Failed to reload config",
			"path", cw.path,
			"error", err,
		)
		return
	}
	cw.logger.Info("Config reloaded", "path", cw.path)
}
