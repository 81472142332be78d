package wire

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/infrastructure/config"
	applog "github.com/taskboard/backend/internal/infrastructure/log"
)

// writeConfig 写入测试配置文件
func writeConfig(t *testing.T, path, level string) {
	t.Helper()
	content := "server:\n  http_port: \"127.0.0.1:0\"\n  gin_mode: test\n" +
		"storage:\n  driver: memory\n" +
		"log:\n  level: " + level + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestInitializeAll_StartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "info")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	app, cleanup, err := InitializeAll(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.HTTPServer)
	require.NotNil(t, app.MCPServer)

	require.NoError(t, app.Start())
	assert.NotNil(t, app.unsubscribe, "推送器应订阅待办事件")
	assert.NotNil(t, app.configWatcher)

	require.NoError(t, app.Stop())
	require.NoError(t, app.Stop(), "重复停止不应报错")
	cleanup()
}

func TestApp_ServerErrorReported(t *testing.T) {
	// 占用端口，HTTP 服务器启动时绑定失败
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "info")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Server.HTTPPort = occupied.Addr().String()

	app, cleanup, err := InitializeAll(cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, app.Start())
	defer app.Stop()

	select {
	case err := <-app.Errors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected listen error from HTTP server")
	}
}

func TestApp_ReloadConfigAppliesLogLevel(t *testing.T) {
	applog.Init(&applog.Config{Level: "info", Format: "text"})
	t.Cleanup(func() { applog.SetLevel("info") })

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "info")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	app, cleanup, err := InitializeAll(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	writeConfig(t, path, "debug")
	assert.Eventually(t, func() bool {
		return applog.Level() == slog.LevelDebug
	}, 3*time.Second, 20*time.Millisecond, "配置文件变更后日志级别应生效")
}

func TestApp_ReloadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: [oops\n"), 0o644))

	app := &App{logger: applog.NewModuleLogger("app", "test")}
	assert.Error(t, app.reloadConfig(path))
}
