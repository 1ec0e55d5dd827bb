package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/taskquery-api/internal/config"
	"github.com/phrazzld/taskquery-api/internal/delegate"
	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models the delegate needs.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiDelegate implements delegate.Delegate using the Gemini API.
type GeminiDelegate struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// models performs the API calls
	models contentGenerator

	// sleep waits between retries; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error

	mu  sync.Mutex
	rng *rand.Rand
}

var _ delegate.Delegate = (*GeminiDelegate)(nil)

// NewGeminiDelegate creates a Gemini client from cfg.
func NewGeminiDelegate(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiDelegate, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", delegate.ErrInvalidConfig, err)
	}

	return newGeminiDelegate(logger, cfg, client.Models), nil
}

func newGeminiDelegate(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) *GeminiDelegate {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiDelegate{
		logger: logger.With("component", "gemini_delegate", "model", cfg.ModelName),
		config: cfg,
		models: models,
		sleep:  sleepContext,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", delegate.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", delegate.ErrInvalidConfig)
	}
	return nil
}

// Invoke sends instruction to Gemini and returns the raw answer text.
//
// Failed API calls are retried up to config.MaxRetries times with exponential
// backoff and jitter. Blocked or empty responses are returned immediately.
// All failures are *delegate.Error values.
func (g *GeminiDelegate) Invoke(ctx context.Context, instruction string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := g.config.RetryDelay()
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}

	temperature := g.config.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"instruction_length", len(instruction))

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, genai.Text(instruction), genConfig)
		if err == nil {
			text, extractErr := extractText(resp)
			if extractErr != nil {
				g.logger.WarnContext(ctx, "Gemini returned an unusable response, not retrying",
					"error", extractErr)
				return "", extractErr
			}
			g.logger.DebugContext(ctx, "Gemini API call successful",
				"attempt", attempt+1,
				"response_length", len(text))
			return text, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", delegate.Classify(fmt.Errorf("%w (last error: %v)", ctxErr, err))
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if attempt >= maxRetries {
			return "", delegate.NewError(delegate.KindUnavailable,
				fmt.Errorf("gemini call failed after %d attempt(s): %w", attempt+1, err))
		}

		delay := g.backoff(baseDelay, attempt)
		g.logger.InfoContext(ctx, "retrying Gemini call after delay",
			"attempt", attempt+1,
			"delay", delay.String())

		if err := g.sleep(ctx, delay); err != nil {
			return "", delegate.Classify(err)
		}
	}
}

// backoff returns base * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func (g *GeminiDelegate) backoff(base time.Duration, attempt int) time.Duration {
	g.mu.Lock()
	jitter := 0.5 + g.rng.Float64()*0.5
	g.mu.Unlock()
	return time.Duration(float64(base) * math.Pow(2, float64(attempt)) * jitter)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", delegate.NewError(delegate.KindUnavailable, errors.New("nil response"))
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", delegate.NewError(delegate.KindContentBlocked,
				fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
		}
		return "", delegate.NewError(delegate.KindUnavailable, errors.New("no candidates in response"))
	}

	candidate := resp.Candidates[0]
	if candidate == nil {
		return "", delegate.NewError(delegate.KindUnavailable, errors.New("nil candidate in response"))
	}
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", delegate.NewError(delegate.KindContentBlocked, nil)
	}
	if candidate.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
