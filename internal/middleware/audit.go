package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"go.uber.org/zap"
)

const maxAuditBody = 4096

// AuditMiddleware logs every write request with its body fields masked.
// The body is restored so handlers can still bind it.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch && method != http.MethodDelete {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/v1/health") || strings.HasPrefix(path, "/metrics") {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("action", actionFromPath(path)),
			zap.String("endpoint", path),
			zap.String("method", method),
			zap.String("ip_address", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
		}
		if body := auditBody(bodyBytes); body != nil {
			fields = append(fields, zap.Any("request_body", body))
		}

		observability.Logger().Info("audit", fields...)
	}
}

// auditBody decodes a JSON object body and masks its sensitive fields.
// Bodies that are empty, too large or not an object are left out.
func auditBody(body []byte) map[string]interface{} {
	if len(body) == 0 || len(body) > maxAuditBody {
		return nil
	}
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	return observability.MaskSensitiveData(data)
}

// actionFromPath returns the last path segment, e.g. "send-challenge"
func actionFromPath(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
