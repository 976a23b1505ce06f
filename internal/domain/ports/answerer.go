package ports

import "context"

// Answerer is the natural-language collaborator that turns a rendered
// context brief into prose. Implementations must honour ctx cancellation
// and should report failures as errs.Upstream errors with a cause.
type Answerer interface {
	// Answer sends prompt and returns the model's text unchanged.
	Answer(ctx context.Context, prompt string) (string, error)
}
