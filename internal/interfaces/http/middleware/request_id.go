package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/infrastructure/log"
)

// RequestIDHeader 请求 ID 头
const RequestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配 ID（沿用客户端传入的值），写入响应头和请求上下文
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
