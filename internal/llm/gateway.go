package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/howtojaydes/ghostwriter-api/internal/logger"
	"github.com/howtojaydes/ghostwriter-api/internal/observability"
)

// DefaultTimeout is the hard ceiling on one outbound model call,
// measured from call start.
const DefaultTimeout = 25 * time.Second

// Failure taxonomy surfaced to the orchestrator. Anything else coming out
// of Execute is a wrapped provider failure.
var (
	// ErrTimeout means the deadline elapsed before the provider answered.
	ErrTimeout = errors.New("generation timed out")
	// ErrEmptyResponse means the provider answered with nothing usable.
	ErrEmptyResponse = errors.New("empty model response")
)

// Sampling carries the resolved sampling parameters for one call.
type Sampling struct {
	Temperature float64
	TopP        float64
}

// Gateway performs the bounded, cancellable call to the model provider.
// Exactly one provider call per Execute; retries are the caller's business.
type Gateway struct {
	provider Provider
	model    string
	timeout  time.Duration
}

// NewGateway creates a gateway around provider for the given model.
func NewGateway(provider Provider, model string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		provider: provider,
		model:    model,
		timeout:  timeout,
	}
}

// Model returns the configured model name.
func (g *Gateway) Model() string {
	return g.model
}

// Execute sends the composed prompt under the gateway deadline and
// classifies the outcome. Client cancellation in ctx propagates into the
// provider call; its error is returned as ctx.Err() so callers can tell
// an abandoned request from a slow provider.
func (g *Gateway) Execute(ctx context.Context, promptText string, s Sampling) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	trace := observability.GetClient().StartTrace(ctx, "lyrics.generate", map[string]interface{}{
		"model":    g.model,
		"provider": g.provider.Name(),
	})
	gen := trace.Generation("provider.call", map[string]interface{}{
		"temperature":  s.Temperature,
		"top_p":        s.TopP,
		"prompt_chars": len(promptText),
	})
	defer trace.Finish()

	start := time.Now()
	out, err := g.provider.GenerateText(callCtx, &TextRequest{
		Model:       g.model,
		Prompt:      promptText,
		Temperature: s.Temperature,
		TopP:        s.TopP,
	})
	duration := time.Since(start)

	if err != nil {
		gen.SetLevel("ERROR")
		gen.Finish()

		// Client went away: not a provider fault, surface the cancellation.
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ctx.Err()
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			logger.Warn("generation deadline exceeded", logger.Fields{
				"model":       g.model,
				"duration_ms": duration.Milliseconds(),
			})
			return "", ErrTimeout
		}
		return "", fmt.Errorf("provider %s: %w", g.provider.Name(), err)
	}

	out = strings.TrimSpace(out)
	gen.Output(map[string]interface{}{"output_chars": len(out)})
	gen.Finish()

	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
