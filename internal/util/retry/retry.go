package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy controls how often and how far apart attempts are made.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy makes up to three retries starting at half a second.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

// Option adjusts a Policy.
type Option func(*Policy)

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(p *Policy) { p.MaxRetries = n }
}

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(p *Policy) { p.InitialDelay = d }
}

// WithMaxDelay caps the wait between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) { p.MaxDelay = d }
}

// Do runs op until it succeeds or gives up. A Permanent error stops
// immediately and is returned unwrapped.
func Do(ctx context.Context, op func(context.Context) error, opts ...Option) error {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}

	delay := p.InitialDelay
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err

		if attempt == p.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("canceled after %d attempts: %w", attempt+1, ctx.Err())
		case <-time.After(delay):
		}
		delay = min(time.Duration(float64(delay)*p.Multiplier), p.MaxDelay)
	}
	return fmt.Errorf("giving up after %d attempts: %w", p.MaxRetries+1, lastErr)
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var perm *permanentError
	return errors.As(err, &perm)
}
