package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/mocks"
	"github.com/ersonp/rolodex/internal/domain/services"
)

func newQueryHandler(t *testing.T, answerer *mocks.Answerer) *QueryHandler {
	t.Helper()
	store := seedGraph(t)
	service := services.NewQueryService(
		services.NewContextAggregator(store, nil),
		services.NewPromptAssembler(),
		answerer,
		time.Second,
		nil,
	)
	return NewQueryHandler(service)
}

func TestQueryHandler_Handle_Success(t *testing.T) {
	answerer := &mocks.Answerer{Reply: "I found 1 matching plumber: Bob Plumber."}
	handler := newQueryHandler(t, answerer)

	resp := handler.Handle(context.Background(), QueryRequest{Query: "plumber?", UserID: "user-1"})

	require.True(t, resp.Success)
	assert.Equal(t, "I found 1 matching plumber: Bob Plumber.", resp.Answer)
	assert.NoError(t, resp.Err())
	assert.Contains(t, answerer.Prompts[0], "Bob Plumber")

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"answer":"I found 1 matching plumber: Bob Plumber."}`, string(body))
}

func TestQueryHandler_Handle_Failures(t *testing.T) {
	tests := []struct {
		name     string
		req      QueryRequest
		answerer *mocks.Answerer
		wantJSON string
	}{
		{
			name:     "blank query",
			req:      QueryRequest{Query: " ", UserID: "user-1"},
			answerer: &mocks.Answerer{},
			wantJSON: `{"success":false,"error":"InvalidArgument"}`,
		},
		{
			name:     "quota",
			req:      QueryRequest{Query: "dentist?", UserID: "user-1"},
			answerer: &mocks.Answerer{Err: errs.Upstream(errs.CauseQuota, "rate limited", nil)},
			wantJSON: `{"success":false,"error":"UpstreamFailure","cause":"quota"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newQueryHandler(t, tt.answerer)

			resp := handler.Handle(context.Background(), tt.req)

			assert.False(t, resp.Success)
			assert.Empty(t, resp.Answer)
			assert.Error(t, resp.Err())

			body, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(body))
		})
	}
}
