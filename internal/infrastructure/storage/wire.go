package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/wire"
	"github.com/taskboard/backend/internal/domain/todo"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideTodoRepository, // 按配置选择待办仓储
)

// ProvideTodoRepository 根据 storage.driver 创建待办仓储
// 返回的 cleanup 负责关闭 SQLite 连接
func ProvideTodoRepository(cfg *config.StorageConfig) (todo.Repository, func(), error) {
	logger := log.NewModuleLogger("storage", "provider")

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := OpenDB(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewSQLiteTodoRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Using SQLite todo repository", "dsn", cfg.DSN)
		return repo, closeDB(db), nil
	case config.DriverMemory, "":
		logger.Info("Using in-memory todo repository")
		return NewMemoryTodoRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// closeDB 关闭数据库连接的 cleanup
func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.NewModuleLogger("storage", "provider").Error("Failed to close database connection",
				"error", err,
			)
		}
	}
}
