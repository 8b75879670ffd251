package engine

import (
	"context"
	"time"
)

// TextGenerator is the external text-generation collaborator. Given a
// prompt and the ordered context of previously generated texts, it
// returns generated text or an error.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, history []string) (string, error)
}

// Policy bounds calls against the text-generation collaborator. Each
// attempt runs under its own timeout so a stalled call routes to the
// next attempt or the caller's fallback path instead of blocking the
// session.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

// Do runs op up to MaxAttempts times, sleeping Backoff between attempts.
// The last error is returned once attempts are exhausted; a nil error
// stops immediately.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && p.Backoff > 0 {
			select {
			case <-time.After(p.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		err = op(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
	}
	return err
}
