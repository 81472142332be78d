package storage

import (
	"database/sql"
	"fmt"

	"github.com/taskboard/backend/internal/infrastructure/config"
	_ "modernc.org/sqlite"
)

// OpenDB 打开 SQLite 数据库连接
// 内存模式数据库在最后一个连接关闭时销毁，因此固定保留单个连接
func OpenDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = config.DefaultSQLiteDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
