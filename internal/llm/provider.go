package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
// Providers return plain text; output shaping lives entirely in the prompt.
type Provider interface {
	// GenerateText sends a single prompt and returns the model's raw text.
	// Cancellation and deadlines arrive through ctx; providers must not
	// retry on their own.
	GenerateText(ctx context.Context, request *TextRequest) (string, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// TextRequest contains all parameters needed for one text generation
type TextRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	TopP        float64
}
