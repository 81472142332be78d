package todo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/taskboard/backend/internal/domain/events"
	domainTodo "github.com/taskboard/backend/internal/domain/todo"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

// Service 待办应用服务（用例编排）
// 校验 -> 仓储 -> 查询/统计 -> 事件
type Service struct {
	repo      domainTodo.Repository
	validator *domainTodo.Validator
	publisher events.Publisher
	now       func() time.Time
	logger    *slog.Logger

	// transitionMu 串行化 读取-修改-写回 类操作（更新、完成状态切换）
	transitionMu sync.Mutex
}

// NewService 创建应用服务，publisher 可为 nil
func NewService(
	repo domainTodo.Repository,
	validator *domainTodo.Validator,
	publisher events.Publisher,
) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		now:       time.Now,
		logger:    log.NewModuleLogger("todo", "service"),
	}
}

// WithClock 替换时钟（测试用）
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateItem 创建待办
func (s *Service) CreateItem(dto CreateTodoDTO) (*TodoDTO, error) {
	priority, err := parseRequiredPriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateContent(dto.Text, priority); err != nil {
		return nil, err
	}

	now := s.now()
	saved, err := s.repo.Save(&domainTodo.TodoItem{
		Text:         dto.Text,
		Priority:     priority,
		DueDate:      dto.DueDate,
		CreationTime: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	result := toDTO(saved, now)
	s.publish(events.TodoCreated, saved.ID, result)
	s.logger.Info("Todo created",
		"todo_id", saved.ID,
		"priority", saved.Priority.String(),
	)
	return result, nil
}

// GetItem 获取单个待办
func (s *Service) GetItem(id int64) (*TodoDTO, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toDTO(item, s.now()), nil
}

// UpdateItem 替换内容字段（text / dueDate / priority），完成状态与创建时间保持不变
func (s *Service) UpdateItem(id int64, dto UpdateTodoDTO) (bool, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return false, err
	}
	priority, err := parseRequiredPriority(dto.Priority)
	if err != nil {
		return false, err
	}
	if err := s.validator.ValidateContent(dto.Text, priority); err != nil {
		return false, err
	}

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	existing, err := s.repo.FindByID(id)
	if err != nil {
		return false, err
	}

	replacement := existing.Clone()
	replacement.Text = dto.Text
	replacement.Priority = priority
	replacement.DueDate = dto.DueDate

	if err := s.replace(replacement); err != nil {
		return false, err
	}

	s.publish(events.TodoUpdated, id, toDTO(replacement, s.now()))
	s.logger.Info("Todo updated", "todo_id", id)
	return true, nil
}

// DeleteItem 删除并返回被删除的待办
func (s *Service) DeleteItem(id int64) (*TodoDTO, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	deleted, err := s.repo.DeleteByID(id)
	if err != nil {
		return nil, err
	}

	result := toDTO(deleted, s.now())
	s.publish(events.TodoDeleted, id, result)
	s.logger.Info("Todo deleted", "todo_id", id)
	return result, nil
}

// MarkDone Pending -> Done，已完成时返回 ErrConflict
func (s *Service) MarkDone(id int64) (bool, error) {
	return s.transition(id, true)
}

// MarkUndone Done -> Pending，未完成时返回 ErrConflict
func (s *Service) MarkUndone(id int64) (bool, error) {
	return s.transition(id, false)
}

// transition 完成状态切换，只修改 Done / DoneDate
func (s *Service) transition(id int64, done bool) (bool, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return false, err
	}

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	item, err := s.repo.FindByID(id)
	if err != nil {
		return false, err
	}

	now := s.now()
	eventType := events.TodoCompleted
	if done {
		if item.Done {
			return false, fmt.Errorf("%w: todo %d is already done", domainTodo.ErrConflict, id)
		}
		item.MarkDone(now)
	} else {
		if !item.Done {
			return false, fmt.Errorf("%w: todo %d is not done", domainTodo.ErrConflict, id)
		}
		item.MarkUndone()
		eventType = events.TodoReopened
	}

	if err := s.replace(item); err != nil {
		return false, err
	}

	s.publish(eventType, id, toDTO(item, now))
	s.logger.Info("Todo status changed",
		"todo_id", id,
		"done", done,
	)
	return true, nil
}

// replace 写回仓储，记录在读取后被并发删除时返回 ErrNotFound
func (s *Service) replace(item *domainTodo.TodoItem) error {
	ok, err := s.repo.Update(item)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: id %d", domainTodo.ErrNotFound, item.ID)
	}
	return nil
}

// ListItems 过滤 -> 排序 -> 分页
func (s *Service) ListItems(q ListQueryDTO) (*PageDTO, error) {
	query, err := q.toQuery()
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotFor(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	page := domainTodo.Apply(snapshot, query)
	return &PageDTO{
		Items:      toDTOs(page.Items, s.now()),
		Total:      page.Total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages,
	}, nil
}

// snapshotFor 按查询条件选择仓储读取方式，结果均按 ID 升序
// 优先级过滤选择性更高，先于完成状态使用；其余条件仍由 Apply 过滤
func (s *Service) snapshotFor(q domainTodo.Query) ([]*domainTodo.TodoItem, error) {
	switch {
	case q.Priority != 0:
		return s.repo.FindByPriority(q.Priority)
	case q.Status == domainTodo.CompletionDone:
		return s.repo.FindByDoneFlag(true)
	case q.Status == domainTodo.CompletionPending:
		return s.repo.FindByDoneFlag(false)
	default:
		return s.repo.FindAll()
	}
}

// priorityAverage 单个优先级的统计结果
type priorityAverage struct {
	priority domainTodo.Priority
	minutes  int64
}

// GetStatistics 三个优先级并发计算平均完成耗时
func (s *Service) GetStatistics() (StatisticsDTO, error) {
	p := pool.NewWithResults[priorityAverage]().WithErrors()
	for _, priority := range domainTodo.Priorities() {
		p.Go(func() (priorityAverage, error) {
			minutes, err := s.averageFor(priority)
			return priorityAverage{priority: priority, minutes: minutes}, err
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	// 结果顺序不固定，按优先级合并
	stats := domainTodo.NewStatistics()
	for _, r := range results {
		stats[r.priority] = r.minutes
	}
	return toStatisticsDTO(stats), nil
}

// GetStatisticsFor 单个优先级的平均完成耗时，同时返回解析后的优先级
func (s *Service) GetStatisticsFor(priority string) (domainTodo.Priority, int64, error) {
	p, err := parseRequiredPriority(priority)
	if err != nil {
		return 0, 0, err
	}
	minutes, err := s.averageFor(p)
	if err != nil {
		return 0, 0, err
	}
	return p, minutes, nil
}

// averageFor 读取已完成待办并计算平均值
func (s *Service) averageFor(priority domainTodo.Priority) (int64, error) {
	items, err := s.repo.FindCompletedByPriority(priority)
	if err != nil {
		return 0, fmt.Errorf("failed to load completed %s todos: %w", priority, err)
	}
	minutes, err := domainTodo.AverageCompletionMinutes(items, s.repo.DurationBetween)
	if err != nil {
		return 0, fmt.Errorf("%s statistics: %w", priority, err)
	}
	return minutes, nil
}

// ListOverdue 已逾期且未完成的待办（按 ID 升序）
func (s *Service) ListOverdue() ([]*TodoDTO, error) {
	now := s.now()
	items, err := s.repo.FindOverdue(now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue todos: %w", err)
	}
	return toDTOs(items, now), nil
}

// CreateBatch 逐条创建，单条失败只计数不中断
func (s *Service) CreateBatch(dtos []CreateTodoDTO) (*BatchResultDTO, error) {
	if len(dtos) == 0 {
		return nil, fmt.Errorf("%w: batch must contain at least one todo", domainTodo.ErrValidation)
	}

	result := &BatchResultDTO{
		Total: len(dtos),
		Items: make([]*TodoDTO, 0, len(dtos)),
	}
	for i, dto := range dtos {
		created, err := s.CreateItem(dto)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchErrorDTO{Index: i, Error: err.Error()})
			continue
		}
		result.Succeeded++
		result.Items = append(result.Items, created)
	}

	s.logger.Info("Batch create finished",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}

// Count 待办总数
func (s *Service) Count() (int, error) {
	return s.repo.Count()
}

// Reset 清空全部待办并重置 ID
func (s *Service) Reset() error {
	if err := s.repo.DeleteAll(); err != nil {
		return fmt.Errorf("failed to reset todos: %w", err)
	}
	s.publish(events.TodosCleared, 0, nil)
	s.logger.Warn("All todos cleared")
	return nil
}

// publish 发布待办事件（未配置事件总线时忽略）
func (s *Service) publish(eventType events.EventType, id int64, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(&events.TodoEvent{
		EventType: eventType,
		TodoID:    id,
		Payload:   payload,
		EventTime: s.now(),
	})
}

// parseRequiredPriority 解析必填优先级
func parseRequiredPriority(s string) (domainTodo.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("%w: priority is required", domainTodo.ErrValidation)
	}
	return domainTodo.ParsePriority(s)
}

// IsClientError 是否为调用方可修正的错误（校验/不存在/冲突）
func IsClientError(err error) bool {
	return errors.Is(err, domainTodo.ErrValidation) ||
		errors.Is(err, domainTodo.ErrNotFound) ||
		errors.Is(err, domainTodo.ErrConflict)
}
