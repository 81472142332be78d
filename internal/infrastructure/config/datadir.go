package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir 数据目录环境变量名
	EnvDataDir = "TASKBOARD_DATA_DIR"
	// DefaultDataDirName 用户主目录下的默认目录名
	DefaultDataDirName = ".taskboard"
	// ConfigFileName 数据目录中的配置文件名，配置监听也以此文件为准
	ConfigFileName = "config.yaml"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir taskboard 的本地目录，存放 config.yaml
// 待办数据只在内存中，这里不会写入任何待办
func GetDataDir() string {
	dataDirOnce.Do(func() {
		dataDirPath = resolveDataDir(os.Getenv(EnvDataDir), os.UserHomeDir)
	})
	return dataDirPath
}

// resolveDataDir 环境变量优先，其次主目录，主目录不可用时退回相对路径
func resolveDataDir(envDir string, homeDir func() (string, error)) string {
	if envDir != "" {
		return filepath.Clean(envDir)
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return DefaultDataDirName
	}
	return filepath.Join(home, DefaultDataDirName)
}

// DataPath 数据目录下的路径
func DataPath(elem ...string) string {
	return filepath.Join(append([]string{GetDataDir()}, elem...)...)
}

// ResetDataDir 重置数据目录缓存（仅用于测试）
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
