package middleware

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/infrastructure/log"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// EnsureUTF8Body 确保请求体是 UTF-8 编码
// Windows 中文终端下的 curl 可能以 GBK 发送待办内容，检测到非 UTF-8 时按 GBK 转换
func EnsureUTF8Body() gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "encoding")

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(nil))
			c.Next()
			return
		}

		if !utf8.Valid(body) {
			// 转换失败或结果仍无效时保留原始数据，由后续绑定报错
			if converted, err := convertGBKToUTF8(body); err == nil && utf8.Valid(converted) {
				logger.Debug("Request body converted from GBK",
					"path", c.Request.URL.Path,
					"bytes", len(body),
				)
				body = converted
				c.Request.ContentLength = int64(len(body))
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

// convertGBKToUTF8 将 GBK 编码的字节转换为 UTF-8
func convertGBKToUTF8(gbkBytes []byte) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(gbkBytes), simplifiedchinese.GBK.NewDecoder())
	return io.ReadAll(reader)
}
