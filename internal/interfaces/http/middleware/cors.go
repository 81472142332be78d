package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/infrastructure/config"
)

// CORS 浏览器前端跨域访问，未配置来源时不做任何处理
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	corsConfig := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Requested-With", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		AllowWildcard: true,
		MaxAge:        time.Duration(cfg.MaxAge) * time.Second,
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}
