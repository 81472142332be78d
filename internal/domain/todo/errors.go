package todo

import "errors"

var (
	// ErrValidation 输入不合法（内容、优先级、ID、分页参数）
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 待办不存在
	ErrNotFound = errors.New("todo not found")
	// ErrConflict 状态机冲突（重复完成、未完成时取消完成）
	ErrConflict = errors.New("todo state conflict")
	// ErrInternal 内部不一致（例如完成时间早于创建时间）
	ErrInternal = errors.New("internal error")
)
