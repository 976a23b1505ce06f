// Package openai provides an Answerer implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/infrastructure/config"
)

const defaultModel = "gpt-4o-mini"

// Client implements ports.Answerer using the chat completions API.
type Client struct {
	client *openai.Client
	model  string
}

var _ ports.Answerer = (*Client)(nil)

// NewClient creates a new OpenAI answering client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := defaultModel
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Answer sends prompt as a single user message and returns the first
// choice's text unchanged.
func (c *Client) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", classify(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", errs.Upstream(errs.CauseMalformed, "no response from OpenAI", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

// classify maps a transport or API error onto an upstream cause.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return errs.Upstream(errs.CauseCancelled, "calling OpenAI", err)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errs.Upstream(errs.CauseTimeout, "calling OpenAI", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || isQuotaCode(apiErr.Code) || apiErr.Type == "insufficient_quota" {
			return errs.Upstream(errs.CauseQuota, "calling OpenAI", err)
		}
		if apiErr.HTTPStatusCode >= http.StatusInternalServerError {
			return errs.Upstream(errs.CauseUnavailable, "calling OpenAI", err)
		}
		return errs.Upstream(errs.CauseUnknown, "calling OpenAI", err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.HTTPStatusCode == http.StatusTooManyRequests:
			return errs.Upstream(errs.CauseQuota, "calling OpenAI", err)
		case reqErr.HTTPStatusCode >= http.StatusInternalServerError:
			return errs.Upstream(errs.CauseUnavailable, "calling OpenAI", err)
		}
	}

	return fmt.Errorf("calling OpenAI: %w", err)
}

func isQuotaCode(code any) bool {
	s, ok := code.(string)
	return ok && (s == "insufficient_quota" || s == "rate_limit_exceeded")
}
