package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"go.uber.org/zap"
)

// Recovery turns a panic into the generic 500 body used by every endpoint
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		observability.Logger().Error("panic recovered",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  gin.H{"general": "Internal server error"},
		})
	})
}
