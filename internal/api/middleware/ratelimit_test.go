package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiterAllowsUpToQuota(t *testing.T) {
	limiter := NewClientLimiter(10)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("10.0.0.1"), "request 11 should be rejected")
}

func TestClientLimiterIsolatesClients(t *testing.T) {
	limiter := NewClientLimiter(2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different address has its own bucket
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewClientLimiter(1).Middleware())

	handlerCalls := 0
	router.GET("/api/gen", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/gen", nil)
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/gen", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"ok":false,"error":"rate limited"}`, second.Body.String())

	// The limited request never reached the handler
	assert.Equal(t, 1, handlerCalls)
}
