package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/log"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		seen = log.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "generated request id should be a uuid")
		assert.Equal(t, id, seen)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "client-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-123", seen)
	})
}

func TestEnsureUTF8Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	router := gin.New()
	router.Use(EnsureUTF8Body())
	router.POST("/echo", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		got = string(data)
		c.Status(http.StatusNoContent)
	})

	gbk, err := simplifiedchinese.GBK.NewEncoder().String(`{"text":"买牛奶"}`)
	require.NoError(t, err)

	tests := []struct {
		name string
		body []byte
	}{
		{"utf8 passthrough", []byte(`{"text":"买牛奶"}`)},
		{"gbk converted", []byte(gbk)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, `{"text":"买牛奶"}`, got)
		})
	}
}

func setupCORSRouter(cfg config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SecurityHeaders(), CORS(cfg))
	router.GET("/todos", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORS(t *testing.T) {
	router := setupCORSRouter(config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://127.0.0.1:*"},
		MaxAge:       3600,
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{"允许的来源", http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"通配端口", http.MethodGet, "http://127.0.0.1:5173", http.StatusOK, "http://127.0.0.1:5173"},
		{"未知来源", http.MethodGet, "http://evil.example.com", http.StatusForbidden, ""},
		{"无 Origin 头", http.MethodGet, "", http.StatusOK, ""},
		{"预检请求", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/todos", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("预检响应头", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/todos", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestCORS_Disabled(t *testing.T) {
	router := setupCORSRouter(config.CORSConfig{})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	router := setupCORSRouter(config.CORSConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}
