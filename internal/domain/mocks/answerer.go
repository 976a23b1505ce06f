package mocks

import (
	"context"
	"sync"
	"time"
)

// Answerer is a mock implementation of ports.Answerer.
type Answerer struct {
	// Reply is returned when Err is nil.
	Reply string
	Err   error

	// Delay holds the call open, honouring ctx cancellation.
	Delay time.Duration

	mu      sync.Mutex
	Prompts []string
}

// Answer records the prompt and returns the configured reply or error.
func (m *Answerer) Answer(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// CallCount returns the number of Answer calls.
func (m *Answerer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
