package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

// ContextFetcher builds the snapshot for one query.
type ContextFetcher interface {
	Fetch(ctx context.Context, userID string) (*entities.ContextSnapshot, error)
}

// BriefBuilder renders a snapshot and query into a brief.
type BriefBuilder interface {
	Build(query string, snapshot *entities.ContextSnapshot) entities.ContextBrief
}

// QueryService answers free-text questions about a user's graph.
type QueryService struct {
	fetcher  ContextFetcher
	builder  BriefBuilder
	answerer ports.Answerer
	timeout  time.Duration
	logger   *zap.Logger
}

// NewQueryService creates a new query service. A zero timeout leaves the
// answering call bounded only by the caller's context.
func NewQueryService(fetcher ContextFetcher, builder BriefBuilder, answerer ports.Answerer, timeout time.Duration, logger *zap.Logger) *QueryService {
	return &QueryService{
		fetcher:  fetcher,
		builder:  builder,
		answerer: answerer,
		timeout:  timeout,
		logger:   loggerOrNop(logger),
	}
}

// Answer fetches context for userID, renders the brief and returns the
// collaborator's text unchanged. Failures are never retried.
func (s *QueryService) Answer(ctx context.Context, query, userID string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errs.InvalidArgument("query is required")
	}
	if strings.TrimSpace(userID) == "" {
		return "", errs.InvalidArgument("user id is required")
	}

	snapshot, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		if errs.IsKind(err, errs.KindRetrieval) || errs.IsKind(err, errs.KindInvalidArgument) {
			return "", err
		}
		return "", errs.Retrieval("fetching context", err)
	}

	brief := s.builder.Build(query, snapshot)

	answerCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		answerCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := timeNow()
	text, err := s.answerer.Answer(answerCtx, brief.Text)
	if err != nil {
		upstream := normalizeUpstream(ctx, err)
		s.logger.Warn("answering failed",
			zap.String("user_id", userID),
			zap.String("cause", string(upstream.Cause)),
			zap.Error(err),
		)
		return "", upstream
	}

	s.logger.Debug("query answered",
		zap.String("user_id", userID),
		zap.Int("contacts", brief.Totals.Contacts),
		zap.Int("entities", brief.Totals.Entities),
		zap.Duration("elapsed", timeNow().Sub(start)),
	)
	return text, nil
}

// normalizeUpstream maps an answering failure onto an UpstreamFailure.
// Cancellation by the caller always reports cancelled; otherwise a cause
// already set by the collaborator is kept.
func normalizeUpstream(parent context.Context, err error) *errs.Error {
	if errors.Is(parent.Err(), context.Canceled) {
		return errs.Upstream(errs.CauseCancelled, "query cancelled", err)
	}

	var typed *errs.Error
	if errors.As(err, &typed) && typed.Kind == errs.KindUpstream {
		return typed
	}

	switch {
	case errors.Is(err, context.Canceled):
		return errs.Upstream(errs.CauseCancelled, "query cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Upstream(errs.CauseTimeout, "answering timed out", err)
	default:
		return errs.Upstream(errs.CauseUnknown, "answering failed", err)
	}
}
