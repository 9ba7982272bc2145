package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies before JSON parsing.
const MaxBodyBytes = 64 << 10 // 64KB

// JSONContentType marks every /api response as JSON up front, so even
// short-circuited responses (limits, panics) carry the right type.
func JSONContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Next()
	}
}

// BodySizeLimit rejects oversized bodies at the transport layer;
// reads past the cap fail inside binding and surface as a 400.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
