package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/howtojaydes/ghostwriter-api/internal/llm"
	"github.com/howtojaydes/ghostwriter-api/internal/logger"
	"github.com/howtojaydes/ghostwriter-api/internal/metrics"
	"github.com/howtojaydes/ghostwriter-api/internal/prompt"
	"github.com/howtojaydes/ghostwriter-api/internal/reference"
	"github.com/howtojaydes/ghostwriter-api/internal/services"
)

const (
	maxPreviewChars = 1200
	maxDetailChars  = 200
)

// LyricsHandler orchestrates the generation pipeline: validation,
// reference load, creativity resolution, prompt composition, gateway call,
// response envelope.
type LyricsHandler struct {
	reference *reference.Loader
	builder   *prompt.Builder
	gateway   *llm.Gateway
	cw        *metrics.Client
	sm        *metrics.SentryMetrics
}

// NewLyricsHandler wires the pipeline. cw may be a disabled client.
func NewLyricsHandler(loader *reference.Loader, gateway *llm.Gateway, cw *metrics.Client) *LyricsHandler {
	return &LyricsHandler{
		reference: loader,
		builder:   prompt.NewPromptBuilder(),
		gateway:   gateway,
		cw:        cw,
		sm:        metrics.NewSentryMetrics(),
	}
}

// generationRequest is the shared body shape for all three intents;
// each endpoint validates the fields it requires.
type generationRequest struct {
	Prompt     string   `json:"prompt"`
	Lyrics     string   `json:"lyrics"`
	Creativity *float64 `json:"creativity"`
}

// Reference reports the corpus state - a diagnostic endpoint.
func (h *LyricsHandler) Reference(c *gin.Context) {
	ref := h.reference.Load()
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"chars":   utf8.RuneCountInString(ref),
		"preview": reference.Truncate(ref, maxPreviewChars),
	})
}

// Generate writes new lyrics from a prompt. POST /api/gen
func (h *LyricsHandler) Generate(c *gin.Context) {
	req, ok := h.bindBody(c)
	if !ok {
		return
	}

	userPrompt := sanitizeField(req.Prompt, prompt.MaxUserPromptChars)
	if userPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing prompt"})
		return
	}

	h.execute(c, prompt.IntentGenerate, userPrompt, "", req.Creativity)
}

// Rewrite transforms existing lyrics. POST /api/rewrite
func (h *LyricsHandler) Rewrite(c *gin.Context) {
	req, ok := h.bindBody(c)
	if !ok {
		return
	}

	lyrics := sanitizeField(req.Lyrics, prompt.MaxSourceLyricsChars)
	if lyrics == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing lyrics"})
		return
	}
	userPrompt := sanitizeField(req.Prompt, prompt.MaxUserPromptChars)

	h.execute(c, prompt.IntentRewrite, userPrompt, lyrics, req.Creativity)
}

// Coach produces a performance-coaching document for lyrics. POST /api/use
func (h *LyricsHandler) Coach(c *gin.Context) {
	req, ok := h.bindBody(c)
	if !ok {
		return
	}

	lyrics := sanitizeField(req.Lyrics, prompt.MaxSourceLyricsChars)
	if lyrics == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing lyrics"})
		return
	}
	userPrompt := sanitizeField(req.Prompt, prompt.MaxUserPromptChars)

	h.execute(c, prompt.IntentCoach, userPrompt, lyrics, req.Creativity)
}

// execute runs the validated request through the rest of the pipeline.
func (h *LyricsHandler) execute(c *gin.Context, intent prompt.Intent, userPrompt, sourceLyrics string, creativity *float64) {
	start := time.Now()

	ref := h.reference.Load()
	if reference.IsBlank(ref) {
		logger.Error("reference corpus unavailable", nil, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "missing lyrics.txt"})
		return
	}

	level := services.CoerceCreativity(creativity)
	profile := services.ResolveCreativity(level)

	composed := h.builder.Compose(intent, prompt.Inputs{
		Reference:    ref,
		UserPrompt:   userPrompt,
		SourceLyrics: sourceLyrics,
		Profile:      profile,
	})

	out, err := h.gateway.Execute(c.Request.Context(), composed, llm.Sampling{
		Temperature: profile.Temperature,
		TopP:        profile.TopP,
	})
	duration := time.Since(start)

	if err != nil {
		h.writeFailure(c, intent, err, duration)
		return
	}

	h.recordOutcome(c, intent, "success", duration)
	logger.LogGenerationRequest(c.Request.Context(), string(intent), h.gateway.Model(), duration, logger.Fields{
		"request_id":   c.GetString("request_id"),
		"creativity":   level,
		"prompt_chars": len(composed),
		"output_chars": len(out),
	})

	if intent == prompt.IntentCoach {
		c.JSON(http.StatusOK, gin.H{"ok": true, "markdown": out, "creativity": level})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "lyrics": out, "creativity": level})
}

// writeFailure maps a gateway error to the failure envelope.
// Diagnostics stay server-side; clients get the classified short message.
func (h *LyricsHandler) writeFailure(c *gin.Context, intent prompt.Intent, err error, duration time.Duration) {
	fields := logger.WithContext(c)
	fields["intent"] = string(intent)
	fields["duration_ms"] = duration.Milliseconds()

	switch {
	case errors.Is(err, llm.ErrTimeout):
		h.recordOutcome(c, intent, "timeout", duration)
		logger.Error("generation timed out", err, fields)
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"ok":      false,
			"error":   "timed out",
			"details": shorten(err.Error()),
		})

	case errors.Is(err, llm.ErrEmptyResponse):
		h.recordOutcome(c, intent, "empty", duration)
		logger.Error("model returned empty response", err, fields)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "empty response"})

	case errors.Is(err, context.Canceled):
		// Client superseded or abandoned the request; nobody is reading
		// the response, so classification only matters for metrics.
		h.recordOutcome(c, intent, "cancelled", duration)
		logger.Info("generation cancelled by client", fields)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "cancelled"})

	default:
		h.recordOutcome(c, intent, "provider_failure", duration)
		logger.Error("generation failed", err, fields)
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":      false,
			"error":   "failed",
			"details": shorten(err.Error()),
		})
	}
}

func (h *LyricsHandler) recordOutcome(c *gin.Context, intent prompt.Intent, outcome string, duration time.Duration) {
	h.sm.RecordGeneration(c.Request.Context(), string(intent), outcome, duration)
	h.cw.RecordGeneration(string(intent), outcome, duration)
}

func (h *LyricsHandler) bindBody(c *gin.Context) (generationRequest, bool) {
	var req generationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Covers malformed JSON and bodies over the transport cap
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return req, false
	}
	return req, true
}

// sanitizeField caps then trims a user-supplied field, mirroring the
// order the limits are documented in: bytes past the cap never count.
func sanitizeField(s string, maxChars int) string {
	return strings.TrimSpace(reference.Truncate(s, maxChars))
}

func shorten(s string) string {
	return reference.Truncate(s, maxDetailChars)
}
