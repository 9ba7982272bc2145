package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/howtojaydes/ghostwriter-api/internal/reference"
)

// HealthHandler reports process liveness and reference corpus state
type HealthHandler struct {
	reference *reference.Loader
}

func NewHealthHandler(loader *reference.Loader) *HealthHandler {
	return &HealthHandler{reference: loader}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ref := h.reference.Load()
	refStatus := "ok"
	if reference.IsBlank(ref) {
		refStatus = "missing"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"reference": gin.H{
			"status": refStatus,
			"chars":  utf8.RuneCountInString(ref),
			"path":   h.reference.Path(),
		},
	})
}
