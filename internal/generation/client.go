package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/metrics"
)

// SystemInstruction is sent ahead of every user prompt.
const SystemInstruction = "You are a Mermaid diagram generator. Respond only with valid Mermaid diagram markup, " +
	"no prose, no explanations and no code fences."

const maxResponseBytes = 1 << 20

type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultConfig mirrors the hosted OpenAI endpoint with a small, cheap model.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.2,
		MaxTokens:   2048,
		Timeout:     60 * time.Second,
	}
}

// Client turns a natural-language prompt into diagram markup using an
// OpenAI-compatible chat completion endpoint. It makes exactly one attempt per call.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "llm-upstream",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Only outages count against the breaker; a bad user key must not
			// lock out every other session.
			IsSuccessful: func(err error) bool {
				var ue *UpstreamError
				if errors.As(err, &ue) {
					return ue.Status != 0 && ue.Status < 500
				}
				return true
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Base().Sugar().Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Generate sends prompt to the completion endpoint and returns the first choice's text.
// The credential and prompt are checked before any network activity.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingCredential
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	logger := logging.NewLogger(ctx)
	logger.LogDebugf("generate", "model=%s prompt_len=%d", c.cfg.Model, len(prompt))
	start := time.Now()

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, apiKey, prompt)
	})
	duration := time.Since(start)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.LogWarnf("generate", "circuit open, rejecting call")
		metrics.RecordUpstreamCall(duration, "rejected")
		return "", &UpstreamError{Status: http.StatusServiceUnavailable, Message: "generation service temporarily unavailable"}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.LogWarnf("generate", "abandoned after %s: %v", duration, err)
		metrics.RecordUpstreamCall(duration, "canceled")
		return "", err
	}
	if err != nil {
		logger.LogError("generate", err)
		metrics.RecordUpstreamCall(duration, outcomeOf(err))
		return "", err
	}

	text := out.(string)
	logger.LogInfof("generate", "completed in %s response_len=%d", duration, len(text))
	metrics.RecordUpstreamCall(duration, "success")
	return text, nil
}

func (c *Client) complete(ctx context.Context, apiKey, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("read response: %v", err)}
	}

	res := decodeResult(resp.StatusCode, raw)
	switch res.kind {
	case resultText:
		return res.text, nil
	case resultFailure:
		return "", &UpstreamError{Status: resp.StatusCode, Message: res.failure}
	default:
		return "", ErrEmptyGeneration
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrEmptyGeneration):
		return "empty"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
