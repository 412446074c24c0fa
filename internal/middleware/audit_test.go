package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditMiddleware_MasksBody(t *testing.T) {
	logs := observeLogs(t)

	router := gin.New()
	router.Use(AuditMiddleware())

	var seenBody string
	router.POST("/v1/verify-challenge", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		seenBody = string(b)
		c.Status(http.StatusOK)
	})

	body := `{"identity_number":"123456789012","phone_number":"9876543210","passcode":"123456"}`
	req, _ := http.NewRequest("POST", "/v1/verify-challenge", bytes.NewBufferString(body))
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, body, seenBody, "handler must still see the body")

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "verify-challenge", fields["action"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])

	logged, ok := fields["request_body"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "********", logged["passcode"])
	assert.Equal(t, "********", logged["identity_number"])
}

func TestAuditMiddleware_SkipsReads(t *testing.T) {
	logs := observeLogs(t)

	router := gin.New()
	router.Use(AuditMiddleware())
	router.GET("/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, method := range []string{"GET", "POST"} {
		req, _ := http.NewRequest(method, "/v1/health", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Zero(t, logs.FilterMessage("audit").Len())
}

func TestAuditMiddleware_NonJSONBody(t *testing.T) {
	logs := observeLogs(t)

	router := gin.New()
	router.Use(AuditMiddleware())
	router.POST("/v1/send-challenge", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req, _ := http.NewRequest("POST", "/v1/send-challenge", strings.NewReader("not json"))
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "request_body")
}

func TestActionFromPath(t *testing.T) {
	assert.Equal(t, "submit-registration", actionFromPath("/v1/submit-registration"))
	assert.Equal(t, "verify-tax-id", actionFromPath("/v1/verify-tax-id/"))
	assert.Equal(t, "plain", actionFromPath("plain"))
}

func TestAuditBody(t *testing.T) {
	assert.Nil(t, auditBody(nil))
	assert.Nil(t, auditBody([]byte(`[1,2]`)))
	assert.Nil(t, auditBody(bytes.Repeat([]byte("a"), maxAuditBody+1)))

	masked := auditBody([]byte(`{"tax_id":"ABCDE1234F","full_name":"John Doe"}`))
	assert.Equal(t, "********", masked["tax_id"])
	assert.Equal(t, "John Doe", masked["full_name"])
}
