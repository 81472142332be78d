package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appTodo "github.com/taskboard/backend/internal/application/todo"
	domainTodo "github.com/taskboard/backend/internal/domain/todo"
	"github.com/taskboard/backend/internal/infrastructure/log"
	"github.com/taskboard/backend/internal/interfaces/http/response"
)

// TodoHandler 待办事项处理器
type TodoHandler struct {
	service *appTodo.Service
	logger  *slog.Logger
}

// NewTodoHandler 创建待办事项处理器
func NewTodoHandler(service *appTodo.Service) *TodoHandler {
	return &TodoHandler{
		service: service,
		logger:  log.NewModuleLogger("http", "todo_handler"),
	}
}

// StatusDTO 状态切换结果
type StatusDTO struct {
	ID      int64 `json:"id"`
	Success bool  `json:"success"`
}

// PriorityAverageDTO 单个优先级的平均完成耗时
type PriorityAverageDTO struct {
	Priority string `json:"priority"`
	Minutes  int64  `json:"minutes"`
}

// List 获取待办列表
// @Summary 获取待办列表（过滤、排序、分页）
// @Tags 待办
// @Accept json
// @Produce json
// @Param page query int false "页码（从 0 开始）" default(0)
// @Param size query int false "每页条数 1-100" default(10)
// @Param text query string false "内容包含（不区分大小写），别名 name"
// @Param status query string false "done / pending，别名 complete"
// @Param priority query string false "LOW / MEDIUM / HIGH"
// @Param sortByDueDate query string false "asc / desc"
// @Param sortByPriority query string false "asc / desc"
// @Success 200 {object} response.ResponseWithPage
// @Failure 400 {object} response.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	query := appTodo.NewListQueryDTO()
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "参数错误", err.Error())
		return
	}
	// 兼容旧参数名
	if query.Text == "" {
		query.Text = c.Query("name")
	}
	if query.Status == "" {
		query.Status = c.Query("complete")
	}

	page, err := h.service.ListItems(query)
	if err != nil {
		h.writeError(c, err, "获取待办列表失败")
		return
	}

	response.SuccessWithPage(c, page.Items, len(page.Items), page.Page, page.Size, page.Total)
}

// Get 获取单个待办
// @Summary 获取待办详情
// @Tags 待办
// @Produce json
// @Param id path int true "待办ID"
// @Success 200 {object} response.Response{data=appTodo.TodoDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		h.writeError(c, err, "获取待办失败")
		return
	}
	response.Success(c, item)
}

// Create 创建待办
// @Summary 创建待办
// @Tags 待办
// @Accept json
// @Produce json
// @Param body body appTodo.CreateTodoDTO true "待办内容"
// @Success 200 {object} response.Response{data=appTodo.TodoDTO}
// @Failure 400 {object} response.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req appTodo.CreateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "参数错误", err.Error())
		return
	}

	item, err := h.service.CreateItem(req)
	if err != nil {
		h.writeError(c, err, "创建待办失败")
		return
	}
	response.Success(c, item)
}

// CreateBatch 批量创建待办
// @Summary 批量创建待办（单条失败不影响其余）
// @Tags 待办
// @Accept json
// @Produce json
// @Param body body []appTodo.CreateTodoDTO true "待办列表"
// @Success 200 {object} response.Response{data=appTodo.BatchResultDTO}
// @Failure 400 {object} response.ErrorResponse
// @Router /todos/batch [post]
func (h *TodoHandler) CreateBatch(c *gin.Context) {
	var req []appTodo.CreateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "参数错误", err.Error())
		return
	}

	result, err := h.service.CreateBatch(req)
	if err != nil {
		h.writeError(c, err, "批量创建待办失败")
		return
	}
	response.Success(c, result)
}

// Update 更新待办
// @Summary 更新待办内容
// @Tags 待办
// @Accept json
// @Produce json
// @Param id path int true "待办ID"
// @Param body body appTodo.UpdateTodoDTO true "更新内容"
// @Success 200 {object} response.Response{data=StatusDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req appTodo.UpdateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "参数错误", err.Error())
		return
	}

	updated, err := h.service.UpdateItem(id, req)
	if err != nil {
		h.writeError(c, err, "更新待办失败")
		return
	}
	response.Success(c, StatusDTO{ID: id, Success: updated})
}

// Delete 删除待办
// @Summary 删除待办
// @Tags 待办
// @Produce json
// @Param id path int true "待办ID"
// @Success 200 {object} response.Response{data=appTodo.TodoDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteItem(id)
	if err != nil {
		h.writeError(c, err, "删除待办失败")
		return
	}
	response.Success(c, deleted)
}

// MarkDone 标记完成
// @Summary 标记待办为已完成
// @Tags 待办
// @Produce json
// @Param id path int true "待办ID"
// @Success 200 {object} response.Response{data=StatusDTO}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /todos/{id}/done [post]
func (h *TodoHandler) MarkDone(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	done, err := h.service.MarkDone(id)
	if err != nil {
		h.writeError(c, err, "标记完成失败")
		return
	}
	response.Success(c, StatusDTO{ID: id, Success: done})
}

// MarkUndone 取消完成
// @Summary 标记待办为未完成
// @Tags 待办
// @Produce json
// @Param id path int true "待办ID"
// @Success 200 {object} response.Response{data=StatusDTO}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /todos/{id}/undone [put]
func (h *TodoHandler) MarkUndone(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	undone, err := h.service.MarkUndone(id)
	if err != nil {
		h.writeError(c, err, "取消完成失败")
		return
	}
	response.Success(c, StatusDTO{ID: id, Success: undone})
}

// Stats 平均完成耗时统计
// @Summary 各优先级平均完成耗时（分钟）
// @Tags 待办
// @Produce json
// @Param priority query string false "只统计指定优先级"
// @Success 200 {object} response.Response{data=appTodo.StatisticsDTO}
// @Failure 400 {object} response.ErrorResponse
// @Router /todos/stats [get]
func (h *TodoHandler) Stats(c *gin.Context) {
	if priority := c.Query("priority"); priority != "" {
		p, minutes, err := h.service.GetStatisticsFor(priority)
		if err != nil {
			h.writeError(c, err, "获取统计失败")
			return
		}
		response.Success(c, PriorityAverageDTO{Priority: p.String(), Minutes: minutes})
		return
	}

	stats, err := h.service.GetStatistics()
	if err != nil {
		h.writeError(c, err, "获取统计失败")
		return
	}
	response.Success(c, stats)
}

// Overdue 逾期待办
// @Summary 已逾期且未完成的待办
// @Tags 待办
// @Produce json
// @Success 200 {object} response.Response{data=[]appTodo.TodoDTO}
// @Router /todos/overdue [get]
func (h *TodoHandler) Overdue(c *gin.Context) {
	items, err := h.service.ListOverdue()
	if err != nil {
		h.writeError(c, err, "获取逾期待办失败")
		return
	}
	response.Success(c, items)
}

// Reset 清空全部待办
// @Summary 清空全部待办并重置 ID
// @Tags 待办
// @Produce json
// @Success 200 {object} response.Response
// @Router /todos [delete]
func (h *TodoHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(); err != nil {
		h.writeError(c, err, "清空待办失败")
		return
	}
	response.Success(c, nil)
}

// parseID 解析路径中的 ID 并写入请求上下文，失败时直接写 400
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "无效的待办ID", c.Param("id"))
		return 0, false
	}
	c.Request = c.Request.WithContext(log.WithTodoID(c.Request.Context(), id))
	return id, true
}

// writeError 领域错误映射为 HTTP 响应
func (h *TodoHandler) writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domainTodo.ErrValidation):
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "参数错误", err.Error())
	case errors.Is(err, domainTodo.ErrNotFound):
		response.ErrorWithDetail(c, http.StatusNotFound, response.CodeNotFound, "待办不存在", err.Error())
	case errors.Is(err, domainTodo.ErrConflict):
		response.ErrorWithDetail(c, http.StatusConflict, response.CodeConflict, "待办状态冲突", err.Error())
	default:
		log.FromContext(c.Request.Context(), h.logger).Error(message,
			"path", c.Request.URL.Path,
			"error", err,
		)
		response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, message, err.Error())
	}
}
