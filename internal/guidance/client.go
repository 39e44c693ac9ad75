// Package guidance calls the generative AI service for career advice and
// supportive chat replies.
package guidance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
)

const (
	OpCareerAdvice = "career_advice"
	OpChat         = "chat"
)

// Client is the guidance service used by the view layer.
type Client interface {
	FetchCareerAdvice(ctx context.Context, emotion model.Emotion, academicContext string) (*model.CareerAdvice, error)
	SendChatMessage(ctx context.Context, history []model.ChatMessage, newMessage string) (*model.ChatMessage, error)
}

// Observer is told the outcome of every guidance call.
type Observer interface {
	GuidanceCompleted(op, outcome string, attempts int)
}

type nopObserver struct{}

func (nopObserver) GuidanceCompleted(string, string, int) {}

// Config bounds each attempt and the retry schedule.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// LLMClient implements Client on top of a langchaingo model.
type LLMClient struct {
	llm      llms.Model
	cfg      Config
	log      *zap.SugaredLogger
	observer Observer
	now      func() time.Time
}

var _ Client = (*LLMClient)(nil)

// NewLLMClient wraps llm. A nil observer disables outcome reporting.
func NewLLMClient(llm llms.Model, cfg Config, log *zap.SugaredLogger, observer Observer) *LLMClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &LLMClient{llm: llm, cfg: cfg, log: log, observer: observer, now: time.Now}
}

// NewOpenAIModel connects to an OpenAI compatible chat completions endpoint.
func NewOpenAIModel(apiKey, baseURL, modelName string) (llms.Model, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guidance model: %w", err)
	}
	return llm, nil
}

// FetchCareerAdvice asks for a short roadmap suited to the student's mood and studies.
func (c *LLMClient) FetchCareerAdvice(ctx context.Context, emotion model.Emotion, academicContext string) (*model.CareerAdvice, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, careerSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, careerPrompt(emotion, academicContext)),
	}

	return withRetry(ctx, c, OpCareerAdvice, func(ctx context.Context) (*model.CareerAdvice, error) {
		resp, err := c.llm.GenerateContent(ctx, messages, llms.WithJSONMode(), llms.WithTemperature(0.7))
		if err != nil {
			return nil, err
		}
		text, err := firstChoice(resp)
		if err != nil {
			return nil, err
		}
		return parseCareerAdvice(text)
	})
}

// SendChatMessage continues the conversation with newMessage and returns the reply.
func (c *LLMClient) SendChatMessage(ctx context.Context, history []model.ChatMessage, newMessage string) (*model.ChatMessage, error) {
	newMessage = strings.TrimSpace(newMessage)
	if newMessage == "" {
		return nil, apperrors.NewValidationError("text", apperrors.ErrRequired)
	}

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, chatSystemPrompt))
	for _, msg := range history {
		role := llms.ChatMessageTypeHuman
		if msg.Role == model.ChatRoleModel {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, msg.Text))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, newMessage))

	return withRetry(ctx, c, OpChat, func(ctx context.Context) (*model.ChatMessage, error) {
		resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.8))
		if err != nil {
			return nil, err
		}
		text, err := firstChoice(resp)
		if err != nil {
			return nil, err
		}
		return &model.ChatMessage{
			Role:      model.ChatRoleModel,
			Text:      text,
			Timestamp: c.now().UnixMilli(),
		}, nil
	})
}

// withRetry runs call with a per-attempt timeout, retrying with exponential
// backoff until it succeeds, retries run out or ctx is done.
func withRetry[T any](ctx context.Context, c *LLMClient, op string, call func(context.Context) (T, error)) (T, error) {
	attempts := 0
	schedule := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(c.cfg.Backoff),
				backoff.WithMaxElapsedTime(0),
			),
			uint64(c.cfg.MaxRetries),
		),
		ctx,
	)

	result, err := backoff.RetryNotifyWithData(func() (T, error) {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		value, err := call(attemptCtx)
		if err != nil && ctx.Err() != nil {
			return value, backoff.Permanent(ctx.Err())
		}
		return value, err
	}, schedule, func(err error, wait time.Duration) {
		c.log.Warnw("guidance call failed, retrying", "op", op, "attempt", attempts, "wait", wait, "error", err)
	})

	if err != nil {
		outcome := "error"
		if errors.Is(err, context.Canceled) {
			outcome = "cancelled"
		}
		c.observer.GuidanceCompleted(op, outcome, attempts)
		c.log.Errorw("guidance call failed", "op", op, "attempts", attempts, "error", err)
		var zero T
		return zero, &apperrors.ServiceError{Op: op, Attempts: attempts, Err: err}
	}

	c.observer.GuidanceCompleted(op, "success", attempts)
	return result, nil
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", apperrors.ErrMalformedResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", apperrors.ErrMalformedResponse
	}
	return text, nil
}
