// Package llm holds the answering collaborator and the guard placed in front
// of it.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

// GuardConfig configures pacing and circuit breaking for an Answerer.
type GuardConfig struct {
	// RatePerSecond paces calls; zero disables pacing.
	RatePerSecond float64
	Burst         int

	// MaxFailures consecutive failures open the circuit for Cooldown.
	MaxFailures uint32
	Cooldown    time.Duration
}

// Guarded paces calls to an Answerer and stops calling it after repeated
// failures. It never retries.
type Guarded struct {
	next    ports.Answerer
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

var _ ports.Answerer = (*Guarded)(nil)

// NewGuarded wraps next with a rate limiter and a circuit breaker.
func NewGuarded(next ports.Answerer, cfg GuardConfig, logger *zap.Logger) *Guarded {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := max(cfg.Burst, 1)

	settings := gobreaker.Settings{
		Name:        "answerer",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// A caller giving up says nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Guarded{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Answer waits for a rate-limit token, then forwards the prompt unless the
// circuit is open.
func (g *Guarded) Answer(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", errs.Upstream(errs.CauseTimeout, "waiting for rate limit", err)
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Answer(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errs.Upstream(errs.CauseUnavailable, "answering service unavailable", err)
	}
	if err != nil {
		return "", err
	}

	text, _ := result.(string)
	return text, nil
}

// State reports the breaker state: "closed", "half-open" or "open".
func (g *Guarded) State() string {
	return g.breaker.State().String()
}
