package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rajgarments/storefront/internal/config"
)

const breakerName = "openai"

// errCallerGone marks calls abandoned by the caller. They say nothing about
// backend health and do not count against the breaker.
var errCallerGone = errors.New("caller abandoned completion")

// OpenAICompleter is a Completer backed by the OpenAI chat completions API.
// Calls go through a circuit breaker so an unavailable backend fails fast.
type OpenAICompleter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

func NewOpenAICompleter(cfg config.AI, logger *slog.Logger) *OpenAICompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	logger = logger.With(slog.String("service", "openai"))
	breakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &OpenAICompleter{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		cb:      cb,
		logger:  logger,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	reply, err := c.cb.Execute(func() (string, error) {
		reply, err := c.complete(ctx, req)
		if err != nil && ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return reply, err
	})
	switch {
	case errors.Is(err, errCallerGone):
		breakerRequests.WithLabelValues(breakerName, "aborted").Inc()
		return "", err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		breakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return "", err
	case err != nil:
		breakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return "", err
	}

	breakerRequests.WithLabelValues(breakerName, "success").Inc()
	return reply, nil
}

func (c *OpenAICompleter) complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
