package handlers

import (
	"context"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// Answerer answers a question about a user's graph.
type Answerer interface {
	Answer(ctx context.Context, query, userID string) (string, error)
}

// QueryHandler renders question answering at the system boundary.
type QueryHandler struct {
	service Answerer
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(service Answerer) *QueryHandler {
	return &QueryHandler{
		service: service,
	}
}

// QueryRequest is a natural-language question from a user.
type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// QueryResponse is either {success:true, answer} or {success:false, error}.
// Error carries the error kind tag and Cause refines upstream failures.
type QueryResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer,omitempty"`
	Error   string `json:"error,omitempty"`
	Cause   string `json:"cause,omitempty"`

	err error
}

// Err returns the underlying error of a failed response.
func (r *QueryResponse) Err() error {
	return r.err
}

// Handle answers req. Failures are reported in the response, never as a
// Go error.
func (h *QueryHandler) Handle(ctx context.Context, req QueryRequest) *QueryResponse {
	answer, err := h.service.Answer(ctx, req.Query, req.UserID)
	if err != nil {
		return &QueryResponse{
			Error: string(errs.KindOf(err)),
			Cause: string(errs.CauseOf(err)),
			err:   err,
		}
	}

	return &QueryResponse{
		Success: true,
		Answer:  answer,
	}
}
