package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/howtojaydes/ghostwriter-api/internal/api/handlers"
	apimiddleware "github.com/howtojaydes/ghostwriter-api/internal/api/middleware"
	"github.com/howtojaydes/ghostwriter-api/internal/config"
	"github.com/howtojaydes/ghostwriter-api/internal/llm"
	"github.com/howtojaydes/ghostwriter-api/internal/metrics"
	"github.com/howtojaydes/ghostwriter-api/internal/reference"
)

// Admission quotas, per client address per minute.
const (
	apiRequestsPerMinute = 30
	genRequestsPerMinute = 10
)

func SetupRouter(cfg *config.Config, gateway *llm.Gateway, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	loader := reference.NewLoader(cfg.ReferencePath)

	// Health check
	healthHandler := handlers.NewHealthHandler(loader)
	router.GET("/health", healthHandler.HealthCheck)

	// Wrong method on a known route gets an actionable hint
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed)

	lyricsHandler := handlers.NewLyricsHandler(loader, gateway, cw)
	metricsHandler := handlers.NewMetricsHandler(version)

	apiLimiter := apimiddleware.NewClientLimiter(apiRequestsPerMinute)
	genLimiter := apimiddleware.NewClientLimiter(genRequestsPerMinute)

	api := router.Group("/api")
	api.Use(
		apimiddleware.JSONContentType(),
		apimiddleware.BodySizeLimit(apimiddleware.MaxBodyBytes),
		apiLimiter.Middleware(),
	)
	{
		api.GET("/ref", lyricsHandler.Reference)
		api.GET("/metrics", metricsHandler.GetMetrics)

		// Generation endpoints carry a second, stricter quota
		gen := api.Group("")
		gen.Use(genLimiter.Middleware())
		{
			gen.POST("/gen", lyricsHandler.Generate)
			gen.POST("/rewrite", lyricsHandler.Rewrite)
			gen.POST("/use", lyricsHandler.Coach)
		}
	}

	// Unknown API routes are JSON 404s; everything else serves the client shell
	router.NoRoute(spaFallback(cfg.PublicDir))

	return router
}

func methodNotAllowed(c *gin.Context) {
	path := c.Request.URL.Path
	if !strings.HasPrefix(path, "/api") {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	hint := "method not allowed"
	switch path {
	case "/api/gen", "/api/rewrite", "/api/use":
		hint = "use POST " + path
	}
	c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": hint})
}

// spaFallback serves static assets from publicDir and falls back to
// index.html so the client shell owns every non-API path.
func spaFallback(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
			return
		}

		clean := filepath.Join(publicDir, filepath.Clean("/"+path))
		if info, err := os.Stat(clean); err == nil && !info.IsDir() {
			c.File(clean)
			return
		}
		c.File(filepath.Join(publicDir, "index.html"))
	}
}
