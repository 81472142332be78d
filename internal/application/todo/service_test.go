package todo

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/events"
	domainTodo "github.com/taskboard/backend/internal/domain/todo"
	"github.com/taskboard/backend/internal/infrastructure/storage"
)

// recordingPublisher 同步记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.TodoEvent
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(*events.TodoEvent))
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc       *Service
	repo      *storage.MemoryTodoRepository
	publisher *recordingPublisher
	clock     *fakeClock
}

func setupService(t *testing.T) *fixture {
	t.Helper()
	repo := storage.NewMemoryTodoRepository()
	publisher := &recordingPublisher{}
	clock := &fakeClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(repo, domainTodo.NewValidator(), publisher).WithClock(clock.Now)
	return &fixture{svc: svc, repo: repo, publisher: publisher, clock: clock}
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	n, err := f.svc.Count()
	require.NoError(t, err)
	return n
}

func TestService_OverdueListAndStatisticsScenario(t *testing.T) {
	f := setupService(t)
	yesterday := f.clock.Now().Add(-24 * time.Hour)

	a, err := f.svc.CreateItem(CreateTodoDTO{Text: "buy milk", Priority: "LOW"})
	require.NoError(t, err)
	b, err := f.svc.CreateItem(CreateTodoDTO{Text: "ship release", Priority: "HIGH", DueDate: &yesterday})
	require.NoError(t, err)

	overdue, err := f.svc.ListOverdue()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, b.ID, overdue[0].ID)
	assert.True(t, overdue[0].Overdue)

	q := NewListQueryDTO()
	q.Status = "pending"
	page, err := f.svc.ListItems(q)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, a.ID, page.Items[0].ID)
	assert.Equal(t, b.ID, page.Items[1].ID)
	assert.Equal(t, 2, page.Total)

	f.clock.Advance(45 * time.Minute)
	ok, err := f.svc.MarkDone(b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := f.svc.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, StatisticsDTO{"LOW": 0, "MEDIUM": 0, "HIGH": 45}, stats)

	overdue, err = f.svc.ListOverdue()
	require.NoError(t, err)
	assert.Empty(t, overdue, "completed todos are never overdue")
}

func TestService_CreateItemValidation(t *testing.T) {
	tests := []struct {
		name string
		dto  CreateTodoDTO
	}{
		{"empty text", CreateTodoDTO{Text: "", Priority: "LOW"}},
		{"blank text", CreateTodoDTO{Text: "   \t", Priority: "LOW"}},
		{"text too long", CreateTodoDTO{Text: strings.Repeat("字", domainTodo.MaxTextLength+1), Priority: "LOW"}},
		{"missing priority", CreateTodoDTO{Text: "write docs"}},
		{"unknown priority", CreateTodoDTO{Text: "write docs", Priority: "URGENT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupService(t)

			_, err := f.svc.CreateItem(tt.dto)
			assert.ErrorIs(t, err, domainTodo.ErrValidation)
			assert.Equal(t, 0, f.count(t), "store must stay untouched")
			assert.Empty(t, f.publisher.types())
		})
	}
}

func TestService_CreateItemBoundaryLength(t *testing.T) {
	f := setupService(t)

	created, err := f.svc.CreateItem(CreateTodoDTO{
		Text:     strings.Repeat("字", domainTodo.MaxTextLength),
		Priority: "medium",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "MEDIUM", created.Priority)
	assert.Equal(t, f.clock.Now(), created.CreationTime)
	assert.False(t, created.Done)
	assert.Nil(t, created.DoneDate)
	assert.Equal(t, []events.EventType{events.TodoCreated}, f.publisher.types())
}

func TestService_MarkDoneTwiceConflicts(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "pay rent", Priority: "HIGH"})
	require.NoError(t, err)

	ok, err := f.svc.MarkDone(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.MarkDone(created.ID)
	assert.ErrorIs(t, err, domainTodo.ErrConflict)
	assert.False(t, ok)
}

func TestService_MarkUndoneOnPendingConflicts(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "pay rent", Priority: "HIGH"})
	require.NoError(t, err)

	_, err = f.svc.MarkUndone(created.ID)
	assert.ErrorIs(t, err, domainTodo.ErrConflict)
}

func TestService_DoneUndoneRoundTrip(t *testing.T) {
	f := setupService(t)
	due := f.clock.Now().Add(72 * time.Hour)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "file taxes", Priority: "MEDIUM", DueDate: &due})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.svc.MarkDone(created.ID)
	require.NoError(t, err)

	done, err := f.svc.GetItem(created.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)
	require.NotNil(t, done.DoneDate)
	assert.Equal(t, f.clock.Now(), *done.DoneDate)

	_, err = f.svc.MarkUndone(created.ID)
	require.NoError(t, err)

	restored, err := f.svc.GetItem(created.ID)
	require.NoError(t, err)
	assert.False(t, restored.Done)
	assert.Nil(t, restored.DoneDate)

	// 其余字段保持不变
	assert.Equal(t, created.Text, restored.Text)
	assert.Equal(t, created.Priority, restored.Priority)
	assert.Equal(t, created.DueDate, restored.DueDate)
	assert.Equal(t, created.CreationTime, restored.CreationTime)

	assert.Equal(t, []events.EventType{
		events.TodoCreated, events.TodoCompleted, events.TodoReopened,
	}, f.publisher.types())
}

func TestService_UpdateItem(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "draft", Priority: "LOW"})
	require.NoError(t, err)
	_, err = f.svc.MarkDone(created.ID)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	due := f.clock.Now().Add(24 * time.Hour)
	ok, err := f.svc.UpdateItem(created.ID, UpdateTodoDTO{Text: "final", Priority: "HIGH", DueDate: &due})
	require.NoError(t, err)
	assert.True(t, ok)

	updated, err := f.svc.GetItem(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, "HIGH", updated.Priority)
	assert.Equal(t, &due, updated.DueDate)
	assert.True(t, updated.Done, "update keeps completion state")
	assert.Equal(t, created.CreationTime, updated.CreationTime)
}

func TestService_UpdateItemErrors(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.UpdateItem(0, UpdateTodoDTO{Text: "x", Priority: "LOW"})
	assert.ErrorIs(t, err, domainTodo.ErrValidation)

	_, err = f.svc.UpdateItem(99, UpdateTodoDTO{Text: "x", Priority: "LOW"})
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)

	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "keep", Priority: "LOW"})
	require.NoError(t, err)
	_, err = f.svc.UpdateItem(created.ID, UpdateTodoDTO{Text: " ", Priority: "LOW"})
	assert.ErrorIs(t, err, domainTodo.ErrValidation)

	unchanged, err := f.svc.GetItem(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", unchanged.Text)
}

func TestService_IDValidationBeforeLookup(t *testing.T) {
	f := setupService(t)

	for _, id := range []int64{0, -1} {
		_, err := f.svc.GetItem(id)
		assert.ErrorIs(t, err, domainTodo.ErrValidation)
		_, err = f.svc.DeleteItem(id)
		assert.ErrorIs(t, err, domainTodo.ErrValidation)
		_, err = f.svc.MarkDone(id)
		assert.ErrorIs(t, err, domainTodo.ErrValidation)
		_, err = f.svc.MarkUndone(id)
		assert.ErrorIs(t, err, domainTodo.ErrValidation)
	}

	_, err := f.svc.GetItem(1)
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)
	assert.NotErrorIs(t, err, domainTodo.ErrValidation)
	_, err = f.svc.MarkDone(1)
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)
}

func TestService_DeleteItem(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "obsolete", Priority: "LOW"})
	require.NoError(t, err)

	deleted, err := f.svc.DeleteItem(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "obsolete", deleted.Text)

	_, err = f.svc.DeleteItem(created.ID)
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)
	assert.Equal(t, 0, f.count(t))
}

func TestService_ListItemsValidation(t *testing.T) {
	f := setupService(t)

	tests := []struct {
		name   string
		mutate func(q *ListQueryDTO)
	}{
		{"negative page", func(q *ListQueryDTO) { q.Page = -1 }},
		{"zero size", func(q *ListQueryDTO) { q.Size = 0 }},
		{"size over max", func(q *ListQueryDTO) { q.Size = domainTodo.MaxPageSize + 1 }},
		{"bad status", func(q *ListQueryDTO) { q.Status = "archived" }},
		{"bad priority", func(q *ListQueryDTO) { q.Priority = "URGENT" }},
		{"bad sort", func(q *ListQueryDTO) { q.DueDateSort = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewListQueryDTO()
			tt.mutate(&q)
			_, err := f.svc.ListItems(q)
			assert.ErrorIs(t, err, domainTodo.ErrValidation)
		})
	}
}

func TestService_ListItemsFiltersSortsAndPages(t *testing.T) {
	f := setupService(t)
	base := f.clock.Now()
	d1 := base.Add(24 * time.Hour)
	d2 := base.Add(48 * time.Hour)

	seed := []CreateTodoDTO{
		{Text: "Write report", Priority: "LOW", DueDate: &d2},
		{Text: "review REPORT", Priority: "HIGH"},
		{Text: "report bug", Priority: "HIGH", DueDate: &d1},
		{Text: "lunch", Priority: "MEDIUM", DueDate: &d1},
	}
	for _, dto := range seed {
		_, err := f.svc.CreateItem(dto)
		require.NoError(t, err)
	}

	q := NewListQueryDTO()
	q.Text = "report"
	q.DueDateSort = "desc"
	page, err := f.svc.ListItems(q)
	require.NoError(t, err)

	ids := make([]int64, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	// 截止时间降序，无截止时间排在最后
	assert.Equal(t, []int64{1, 3, 2}, ids)

	q = NewListQueryDTO()
	q.Size = 3
	q.Page = 1
	page, err = f.svc.ListItems(q)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(4), page.Items[0].ID)

	q.Page = 2
	page, err = f.svc.ListItems(q)
	require.NoError(t, err, "page beyond the end is not an error")
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

// finderRecordingRepo 记录列表查询使用的仓储方法
type finderRecordingRepo struct {
	*storage.MemoryTodoRepository
	calls []string
}

func (r *finderRecordingRepo) FindAll() ([]*domainTodo.TodoItem, error) {
	r.calls = append(r.calls, "FindAll")
	return r.MemoryTodoRepository.FindAll()
}

func (r *finderRecordingRepo) FindByDoneFlag(done bool) ([]*domainTodo.TodoItem, error) {
	r.calls = append(r.calls, "FindByDoneFlag")
	return r.MemoryTodoRepository.FindByDoneFlag(done)
}

func (r *finderRecordingRepo) FindByPriority(priority domainTodo.Priority) ([]*domainTodo.TodoItem, error) {
	r.calls = append(r.calls, "FindByPriority")
	return r.MemoryTodoRepository.FindByPriority(priority)
}

func TestService_ListItemsChoosesFinder(t *testing.T) {
	repo := &finderRecordingRepo{MemoryTodoRepository: storage.NewMemoryTodoRepository()}
	svc := NewService(repo, domainTodo.NewValidator(), nil)

	for _, dto := range []CreateTodoDTO{
		{Text: "low pending", Priority: "LOW"},
		{Text: "high done", Priority: "HIGH"},
		{Text: "high pending", Priority: "HIGH"},
	} {
		_, err := svc.CreateItem(dto)
		require.NoError(t, err)
	}
	_, err := svc.MarkDone(2)
	require.NoError(t, err)

	tests := []struct {
		name        string
		status      string
		priority    string
		expectedFn  string
		expectedIDs []int64
	}{
		{"无过滤", "", "", "FindAll", []int64{1, 2, 3}},
		{"已完成", "done", "", "FindByDoneFlag", []int64{2}},
		{"未完成", "undone", "", "FindByDoneFlag", []int64{1, 3}},
		{"按优先级", "", "HIGH", "FindByPriority", []int64{2, 3}},
		{"优先级与状态组合", "pending", "HIGH", "FindByPriority", []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.calls = nil
			q := NewListQueryDTO()
			q.Status = tt.status
			q.Priority = tt.priority

			page, err := svc.ListItems(q)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.expectedFn}, repo.calls)

			ids := make([]int64, 0, len(page.Items))
			for _, item := range page.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestService_ListItemsHugePage(t *testing.T) {
	f := setupService(t)
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateItem(CreateTodoDTO{Text: "item", Priority: "LOW"})
		require.NoError(t, err)
	}

	q := NewListQueryDTO()
	q.Page = math.MaxInt/2 + 1
	q.Size = 2

	var page *PageDTO
	require.NotPanics(t, func() {
		var err error
		page, err = f.svc.ListItems(q)
		require.NoError(t, err)
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
}

func TestService_StatisticsNinetyMinutes(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "deploy", Priority: "MEDIUM"})
	require.NoError(t, err)

	f.clock.Advance(90*time.Minute + 59*time.Second)
	_, err = f.svc.MarkDone(created.ID)
	require.NoError(t, err)

	stats, err := f.svc.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(90), stats["MEDIUM"])
	assert.Equal(t, int64(0), stats["LOW"])
	assert.Equal(t, int64(0), stats["HIGH"])

	priority, single, err := f.svc.GetStatisticsFor("medium")
	require.NoError(t, err)
	assert.Equal(t, domainTodo.PriorityMedium, priority, "应返回解析后的优先级")
	assert.Equal(t, int64(90), single)

	_, _, err = f.svc.GetStatisticsFor("")
	assert.ErrorIs(t, err, domainTodo.ErrValidation)
}

func TestService_StatisticsInconsistentTimestamps(t *testing.T) {
	f := setupService(t)
	created := f.clock.Now()
	item := &domainTodo.TodoItem{Text: "broken", Priority: domainTodo.PriorityLow, CreationTime: created}
	item.MarkDone(created.Add(-time.Minute))
	_, err := f.repo.Save(item)
	require.NoError(t, err)

	_, err = f.svc.GetStatistics()
	assert.ErrorIs(t, err, domainTodo.ErrInternal)
}

func TestService_CreateBatch(t *testing.T) {
	f := setupService(t)

	result, err := f.svc.CreateBatch([]CreateTodoDTO{
		{Text: "one", Priority: "LOW"},
		{Text: "", Priority: "LOW"},
		{Text: "three", Priority: "HIGH"},
		{Text: "four"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, 3, result.Errors[1].Index)
	assert.Equal(t, 2, f.count(t))

	_, err = f.svc.CreateBatch(nil)
	assert.ErrorIs(t, err, domainTodo.ErrValidation)
	_, err = f.svc.CreateBatch([]CreateTodoDTO{})
	assert.ErrorIs(t, err, domainTodo.ErrValidation)
}

func TestService_Reset(t *testing.T) {
	f := setupService(t)
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateItem(CreateTodoDTO{Text: "todo", Priority: "LOW"})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.Reset())
	assert.Equal(t, 0, f.count(t))

	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "fresh", Priority: "LOW"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Contains(t, f.publisher.types(), events.TodosCleared)
}

func TestService_ConcurrentMarkDoneSucceedsOnce(t *testing.T) {
	f := setupService(t)
	created, err := f.svc.CreateItem(CreateTodoDTO{Text: "race", Priority: "LOW"})
	require.NoError(t, err)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.MarkDone(created.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, domainTodo.ErrConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
}

func TestService_NilPublisher(t *testing.T) {
	svc := NewService(storage.NewMemoryTodoRepository(), domainTodo.NewValidator(), nil)

	require.NotPanics(t, func() {
		_, err := svc.CreateItem(CreateTodoDTO{Text: "quiet", Priority: "LOW"})
		require.NoError(t, err)
	})
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(domainTodo.ErrValidation))
	assert.True(t, IsClientError(domainTodo.ErrNotFound))
	assert.True(t, IsClientError(domainTodo.ErrConflict))
	assert.False(t, IsClientError(domainTodo.ErrInternal))
}
