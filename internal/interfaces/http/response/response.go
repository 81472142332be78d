package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码
const (
	// CodeInvalidParam 参数错误
	CodeInvalidParam = 100001
	// CodeInternal 内部错误
	CodeInternal = 800000
	// CodeNotFound 资源不存在
	CodeNotFound = 800004
	// CodeConflict 状态冲突
	CodeConflict = 800009
)

// 响应消息
const (
	MessageSuccess = "success"
	MessageEmpty   = "empty"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: MessageSuccess,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
	})
}

// ErrorWithDetail 带详情的错误响应
func ErrorWithDetail(c *gin.Context, httpCode int, errCode int, message, detail string) {
	c.JSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
		Detail:  detail,
	})
}

// PageInfo 分页信息
type PageInfo struct {
	Page     int `json:"page"`     // 当前页码（从 0 开始）
	PageSize int `json:"pageSize"` // 每页条数
	Total    int `json:"total"`    // 总条数
	Pages    int `json:"pages"`    // 总页数
}

// ResponseWithPage 带分页的响应结构
type ResponseWithPage struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Page    *PageInfo   `json:"page,omitempty"`
}

// SuccessWithPage 成功响应（带分页）
// 当前页没有数据时 message 为 "empty"，仍然是成功响应
func SuccessWithPage(c *gin.Context, data interface{}, count, page, pageSize, total int) {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize // 向上取整
	}
	message := MessageSuccess
	if count == 0 {
		message = MessageEmpty
	}
	c.JSON(http.StatusOK, ResponseWithPage{
		Code:    0,
		Message: message,
		Data:    data,
		Page: &PageInfo{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			Pages:    pages,
		},
	})
}
