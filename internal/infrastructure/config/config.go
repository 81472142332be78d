package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// 环境变量名
const (
	// EnvConfigFile 配置文件路径
	EnvConfigFile = "TASKBOARD_CONFIG"
	// EnvHTTPPort HTTP 监听端口
	EnvHTTPPort = "TASKBOARD_HTTP_PORT"
	// EnvStorageDriver 仓储驱动：memory / sqlite
	EnvStorageDriver = "TASKBOARD_STORAGE_DRIVER"
	// EnvStorageDSN SQLite DSN
	EnvStorageDSN = "TASKBOARD_STORAGE_DSN"
	// EnvCORSOrigins 允许的跨域来源，逗号分隔
	EnvCORSOrigins = "TASKBOARD_CORS_ORIGINS"
)

// 仓储驱动
const (
	// DriverMemory 内存 map 仓储
	DriverMemory = "memory"
	// DriverSQLite 内存模式 SQLite 仓储
	DriverSQLite = "sqlite"
)

// DefaultSQLiteDSN 共享缓存的内存数据库，进程退出即丢失
const DefaultSQLiteDSN = "file:taskboard?mode=memory&cache=shared"

// Config 应用配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// path 配置文件路径（可能不存在）
	path string
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string     `yaml:"http_port"` // 固定端口，用于单例锁
	GinMode  string     `yaml:"gin_mode"`  // debug / release / test
	CORS     CORSConfig `yaml:"cors"`
}

// CORSConfig 浏览器前端跨域配置，AllowOrigins 为空时不启用
// 来源支持一个 * 通配符，例如 http://127.0.0.1:*
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
	MaxAge       int      `yaml:"max_age"` // 预检缓存秒数
}

// StorageConfig 仓储配置
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LogConfig 日志配置（为空时沿用环境变量）
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewConfig 创建配置（默认值 + 环境变量）
func NewConfig() *Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// defaults 默认配置
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":9090",
			GinMode:  "release",
			CORS: CORSConfig{
				AllowOrigins: []string{
					"http://localhost:3000",
					"http://localhost:8080",
					"http://127.0.0.1:*",
				},
				MaxAge: 3600,
			},
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			DSN:    DefaultSQLiteDSN,
		},
	}
}

// Load 加载配置：默认值 -> YAML 文件 -> 环境变量
// 文件不存在不视为错误
func Load(path string) (*Config, error) {
	cfg := defaults()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault 从默认路径加载配置
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// ConfigPath 配置文件路径：优先 TASKBOARD_CONFIG，默认 <数据目录>/config.yaml
func ConfigPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return DataPath(ConfigFileName)
}

// Path 配置文件路径
func (c *Config) Path() string {
	return c.path
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.HTTPPort == "" {
		return errors.New("server.http_port must not be empty")
	}
	switch c.Server.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.Server.GinMode)
	}
	if c.Server.CORS.MaxAge < 0 {
		return fmt.Errorf("server.cors.max_age must be >= 0, got %d", c.Server.CORS.MaxAge)
	}
	for _, origin := range c.Server.CORS.AllowOrigins {
		if origin == "*" {
			continue
		}
		if strings.Count(origin, "*") > 1 {
			return fmt.Errorf("cors origin %q may contain at most one wildcard", origin)
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors origin %q must start with http:// or https://", origin)
		}
	}
	return nil
}

// applyEnv 环境变量覆盖
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvHTTPPort); v != "" {
		c.Server.HTTPPort = v
	}
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvStorageDSN); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		c.Server.CORS.AllowOrigins = splitList(v)
	}
}

// splitList 逗号分隔列表，忽略空项
func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewStorageConfig 创建仓储配置
func NewStorageConfig(cfg *Config) *StorageConfig {
	return &cfg.Storage
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}
