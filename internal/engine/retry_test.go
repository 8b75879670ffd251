package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPolicyDoSucceedsFirstTry(t *testing.T) {
	p := Policy{MaxAttempts: 3}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPolicyDoRetriesUntilSuccess(t *testing.T) {
	p := Policy{MaxAttempts: 3}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPolicyDoReturnsLastError(t *testing.T) {
	p := Policy{MaxAttempts: 2}

	wantErr := errors.New("persistent")
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPolicyDoZeroAttemptsRunsOnce(t *testing.T) {
	p := Policy{}

	calls := 0
	_ = p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPolicyDoAttemptTimeout(t *testing.T) {
	p := Policy{MaxAttempts: 2, Timeout: 10 * time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do() error = %v, want deadline exceeded", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (each attempt gets its own timeout)", calls)
	}
}

func TestPolicyDoCanceledContext(t *testing.T) {
	p := Policy{MaxAttempts: 3, Backoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Do(ctx, func(ctx context.Context) error {
		return errors.New("fail once, then wait in backoff")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context canceled", err)
	}
}
