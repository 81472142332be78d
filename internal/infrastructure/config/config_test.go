package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvHTTPPort, "")
	t.Setenv(EnvStorageDriver, "")
	t.Setenv(EnvStorageDSN, "")
	t.Setenv(EnvCORSOrigins, "")
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()
	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DefaultSQLiteDSN, cfg.Storage.DSN)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:*"}, cfg.Server.CORS.AllowOrigins)
	assert.Equal(t, 3600, cfg.Server.CORS.MaxAge)
}

func TestNewConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHTTPPort, ":29960")
	t.Setenv(EnvStorageDriver, DriverSQLite)
	t.Setenv(EnvCORSOrigins, " https://todo.example.com , ,http://localhost:5173")

	cfg := NewConfig()
	assert.Equal(t, ":29960", cfg.Server.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, []string{"https://todo.example.com", "http://localhost:5173"}, cfg.Server.CORS.AllowOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "absent.yaml")
	cfg, err := Load(path)
	require.NoError(t, err, "配置文件不存在时应使用默认值")
	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: ":18080"
storage:
  driver: sqlite
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":18080", cfg.Server.HTTPPort)
	assert.Equal(t, "release", cfg.Server.GinMode, "未设置的字段应保留默认值")
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, DefaultSQLiteDSN, cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: \":18080\"\n"), 0o644))
	t.Setenv(EnvHTTPPort, ":30000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":30000", cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"YAML 格式错误", "server: [unclosed"},
		{"未知驱动", "storage:\n  driver: mysql\n"},
		{"空端口", "server:\n  http_port: \"\"\n"},
		{"未知 gin 模式", "server:\n  gin_mode: verbose\n"},
		{"跨域来源缺少协议", "server:\n  cors:\n    allow_origins: [\"localhost:3000\"]\n"},
		{"跨域来源多个通配符", "server:\n  cors:\n    allow_origins: [\"http://*.example.*\"]\n"},
		{"预检缓存为负", "server:\n  cors:\n    max_age: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(EnvConfigFile, "/etc/taskboard.yaml")
	assert.Equal(t, "/etc/taskboard.yaml", ConfigPath())

	t.Setenv(EnvConfigFile, "")
	ResetDataDir()
	t.Setenv(EnvDataDir, "/data")
	assert.Equal(t, filepath.Join("/data", "config.yaml"), ConfigPath())
	ResetDataDir()
}
