package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "plain error", err: errors.New("boom"), expected: KindInternal},
		{name: "not found", err: NotFound("user", "u-1"), expected: KindNotFound},
		{name: "wrapped conflict", err: fmt.Errorf("saving: %w", Conflict("dup")), expected: KindConflict},
		{name: "upstream", err: Upstream(CauseTimeout, "model", context.DeadlineExceeded), expected: KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", Upstream(CauseCancelled, "answering", context.Canceled))

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, &Error{Kind: KindUpstream, Cause: CauseCancelled}))
	assert.False(t, errors.Is(err, &Error{Kind: KindUpstream, Cause: CauseTimeout}))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, context.Canceled), "wrapped cause stays reachable")
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "[NotFound] contact not found: c-1", NotFound("contact", "c-1").Error())
	assert.Equal(t, "[UpstreamFailure(quota)] answering: 429",
		Upstream(CauseQuota, "answering", errors.New("429")).Error())
}

func TestCauseOf(t *testing.T) {
	assert.Equal(t, CauseQuota, CauseOf(Upstream(CauseQuota, "x", nil)))
	assert.Equal(t, Cause(""), CauseOf(errors.New("plain")))
	assert.True(t, IsKind(InvalidArgument("missing %s", "name"), KindInvalidArgument))
}
