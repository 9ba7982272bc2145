package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const (
	providerNameOpenAI = "openai"
)

// OpenAIProvider implements the Provider interface using OpenAI's Responses API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client: &client,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// GenerateText implements text generation using OpenAI's Responses API
func (p *OpenAIProvider) GenerateText(ctx context.Context, request *TextRequest) (string, error) {
	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "openai.generate_text")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(request.Prompt),
		},
		Temperature: openai.Float(request.Temperature),
		TopP:        openai.Float(request.TopP),
	}

	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Responses.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	textOutput := resp.OutputText()
	log.Printf("OPENAI API CALL COMPLETED in %v (output: %d chars)", apiDuration, len(textOutput))

	transaction.SetTag("success", "true")
	return textOutput, nil
}
