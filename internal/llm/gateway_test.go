package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a test implementation of the Provider interface
type fakeProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *TextRequest) (string, error)
}

func (f *fakeProvider) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeProvider) GenerateText(ctx context.Context, request *TextRequest) (string, error) {
	if f.generateFunc != nil {
		return f.generateFunc(ctx, request)
	}
	return "some lyrics", nil
}

func TestGatewaySuccessTrimsOutput(t *testing.T) {
	gw := NewGateway(&fakeProvider{
		generateFunc: func(_ context.Context, _ *TextRequest) (string, error) {
			return "\n  rain on the window  \n", nil
		},
	}, "gemini-2.5-flash", time.Second)

	out, err := gw.Execute(context.Background(), "prompt", Sampling{Temperature: 0.95, TopP: 0.95})
	require.NoError(t, err)
	assert.Equal(t, "rain on the window", out)
}

func TestGatewayPassesSamplingParams(t *testing.T) {
	var got *TextRequest
	gw := NewGateway(&fakeProvider{
		generateFunc: func(_ context.Context, request *TextRequest) (string, error) {
			got = request
			return "ok", nil
		},
	}, "gemini-2.5-flash", time.Second)

	_, err := gw.Execute(context.Background(), "the prompt", Sampling{Temperature: 0.35, TopP: 0.90})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	assert.Equal(t, "the prompt", got.Prompt)
	assert.InDelta(t, 0.35, got.Temperature, 1e-9)
	assert.InDelta(t, 0.90, got.TopP, 1e-9)
}

func TestGatewayEmptyResponseIsFailure(t *testing.T) {
	gw := NewGateway(&fakeProvider{
		generateFunc: func(_ context.Context, _ *TextRequest) (string, error) {
			return "   \n\t ", nil
		},
	}, "gemini-2.5-flash", time.Second)

	_, err := gw.Execute(context.Background(), "prompt", Sampling{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGatewayTimeoutClassification(t *testing.T) {
	gw := NewGateway(&fakeProvider{
		generateFunc: func(ctx context.Context, _ *TextRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}, "gemini-2.5-flash", 20*time.Millisecond)

	_, err := gw.Execute(context.Background(), "prompt", Sampling{})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGatewayClientCancellationIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gw := NewGateway(&fakeProvider{
		generateFunc: func(ctx context.Context, _ *TextRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}, "gemini-2.5-flash", time.Second)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := gw.Execute(ctx, "prompt", Sampling{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestGatewayProviderFailureIsWrapped(t *testing.T) {
	boom := errors.New("quota exhausted")
	gw := NewGateway(&fakeProvider{
		name: "gemini",
		generateFunc: func(_ context.Context, _ *TextRequest) (string, error) {
			return "", boom
		},
	}, "gemini-2.5-flash", time.Second)

	_, err := gw.Execute(context.Background(), "prompt", Sampling{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "gemini")
}

func TestGatewayMakesExactlyOneCall(t *testing.T) {
	calls := 0
	gw := NewGateway(&fakeProvider{
		generateFunc: func(_ context.Context, _ *TextRequest) (string, error) {
			calls++
			return "", errors.New("transient")
		},
	}, "gemini-2.5-flash", time.Second)

	_, err := gw.Execute(context.Background(), "prompt", Sampling{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGatewayDefaultTimeout(t *testing.T) {
	gw := NewGateway(&fakeProvider{}, "gemini-2.5-flash", 0)
	assert.Equal(t, DefaultTimeout, gw.timeout)
}
