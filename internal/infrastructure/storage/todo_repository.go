package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskboard/backend/internal/domain/todo"
)

// SQLiteTodoRepository 待办事项 SQLite 仓储实现
// 与内存仓储实现同一接口，默认使用内存模式数据库，不落盘
type SQLiteTodoRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteTodoRepository 创建 SQLite 仓储实例并确保表存在
func NewSQLiteTodoRepository(db *sql.DB) (*SQLiteTodoRepository, error) {
	if err := initTodoTable(db); err != nil {
		return nil, err
	}
	return &SQLiteTodoRepository{db: db, now: time.Now}, nil
}

// initTodoTable 初始化待办事项表
// AUTOINCREMENT 保证删除后 ID 不会被复用
func initTodoTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		priority INTEGER NOT NULL,
		due_date INTEGER,
		done INTEGER NOT NULL DEFAULT 0,
		done_date INTEGER,
		creation_time INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_todos_done_priority ON todos(done, priority);
	CREATE INDEX IF NOT EXISTS idx_todos_due_date ON todos(due_date);
	`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create todos indexes: %w", err)
	}

	return nil
}

const selectTodoColumns = `SELECT id, text, priority, due_date, done, done_date, creation_time FROM todos`

// rowScanner *sql.Row 与 *sql.Rows 的公共接口
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodo 读取一行待办
func scanTodo(row rowScanner) (*todo.TodoItem, error) {
	var (
		item         todo.TodoItem
		priority     int
		dueDate      sql.NullInt64
		done         int
		doneDate     sql.NullInt64
		creationTime int64
	)

	if err := row.Scan(&item.ID, &item.Text, &priority, &dueDate, &done, &doneDate, &creationTime); err != nil {
		return nil, err
	}

	item.Priority = todo.Priority(priority)
	item.Done = done == 1
	item.CreationTime = time.Unix(0, creationTime)
	if dueDate.Valid {
		t := time.Unix(0, dueDate.Int64)
		item.DueDate = &t
	}
	if doneDate.Valid {
		t := time.Unix(0, doneDate.Int64)
		item.DoneDate = &t
	}
	return &item, nil
}

// nullTime 可选时间转换为 NULL 或纳秒时间戳
func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FindByID 根据 ID 查找待办事项
func (r *SQLiteTodoRepository) FindByID(id int64) (*todo.TodoItem, error) {
	item, err := scanTodo(r.db.QueryRow(selectTodoColumns+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", todo.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}
	return item, nil
}

// Save 保存待办事项
func (r *SQLiteTodoRepository) Save(item *todo.TodoItem) (*todo.TodoItem, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: todo is required", todo.ErrValidation)
	}

	stored := item.Clone()

	if stored.ID == 0 {
		if stored.CreationTime.IsZero() {
			stored.CreationTime = r.now()
		}
		result, err := r.db.Exec(`
			INSERT INTO todos (text, priority, due_date, done, done_date, creation_time)
			VALUES (?, ?, ?, ?, ?, ?)`,
			stored.Text,
			int(stored.Priority),
			nullTime(stored.DueDate),
			boolToInt(stored.Done),
			nullTime(stored.DoneDate),
			stored.CreationTime.UnixNano(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert todo: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read todo id: %w", err)
		}
		stored.ID = id
		return stored, nil
	}

	// 显式 ID 使用 upsert
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO todos
		(id, text, priority, due_date, done, done_date, creation_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stored.ID,
		stored.Text,
		int(stored.Priority),
		nullTime(stored.DueDate),
		boolToInt(stored.Done),
		nullTime(stored.DoneDate),
		stored.CreationTime.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}
	return stored, nil
}

// Update 整体替换已存在的待办，creation_time 列不参与更新
func (r *SQLiteTodoRepository) Update(item *todo.TodoItem) (bool, error) {
	if item == nil || item.ID == 0 {
		return false, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE todos
		SET text = ?, priority = ?, due_date = ?, done = ?, done_date = ?
		WHERE id = ?`,
		item.Text,
		int(item.Priority),
		nullTime(item.DueDate),
		boolToInt(item.Done),
		nullTime(item.DoneDate),
		item.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit todo update: %w", err)
	}
	return true, nil
}

// DeleteByID 删除并返回被删除的待办
func (r *SQLiteTodoRepository) DeleteByID(id int64) (*todo.TodoItem, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := scanTodo(tx.QueryRow(selectTodoColumns+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", todo.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM todos WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit todo delete: %w", err)
	}
	return item, nil
}

// DeleteAll 清空待办并重置自增序列
func (r *SQLiteTodoRepository) DeleteAll() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM todos`); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = 'todos'`); err != nil {
		return fmt.Errorf("failed to reset todo sequence: %w", err)
	}
	return tx.Commit()
}

// FindAll 获取所有待办（按 ID 升序）
func (r *SQLiteTodoRepository) FindAll() ([]*todo.TodoItem, error) {
	return r.query(selectTodoColumns + ` ORDER BY id ASC`)
}

// FindCompletedByPriority 查询指定优先级的已完成待办
func (r *SQLiteTodoRepository) FindCompletedByPriority(priority todo.Priority) ([]*todo.TodoItem, error) {
	return r.query(selectTodoColumns+` WHERE done = 1 AND priority = ? ORDER BY id ASC`, int(priority))
}

// FindByDoneFlag 按完成状态查询
func (r *SQLiteTodoRepository) FindByDoneFlag(done bool) ([]*todo.TodoItem, error) {
	return r.query(selectTodoColumns+` WHERE done = ? ORDER BY id ASC`, boolToInt(done))
}

// FindByPriority 按优先级查询
func (r *SQLiteTodoRepository) FindByPriority(priority todo.Priority) ([]*todo.TodoItem, error) {
	return r.query(selectTodoColumns+` WHERE priority = ? ORDER BY id ASC`, int(priority))
}

// FindOverdue 查询已逾期且未完成的待办
func (r *SQLiteTodoRepository) FindOverdue(now time.Time) ([]*todo.TodoItem, error) {
	return r.query(selectTodoColumns+`
		WHERE done = 0 AND due_date IS NOT NULL AND due_date < ?
		ORDER BY id ASC`, now.UnixNano())
}

// Count 待办总数
func (r *SQLiteTodoRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return count, nil
}

// DurationBetween 计算 a 到 b 的时长
func (r *SQLiteTodoRepository) DurationBetween(a, b time.Time) (time.Duration, error) {
	return todo.DurationBetween(a, b)
}

// query 执行查询并读取所有行
func (r *SQLiteTodoRepository) query(query string, args ...any) ([]*todo.TodoItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	items := make([]*todo.TodoItem, 0)
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return items, nil
}

// 编译时检查接口实现
var _ todo.Repository = (*SQLiteTodoRepository)(nil)
