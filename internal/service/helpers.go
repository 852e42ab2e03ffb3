package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

// WritePolicy controls how often a failed store write is retried before the
// use case reports WRITE_FAILED. Backoff grows linearly with the attempt.
type WritePolicy struct {
	Retries int
	Backoff time.Duration
}

var DefaultWritePolicy = WritePolicy{Retries: 2, Backoff: 100 * time.Millisecond}

type Option func(*base)

func WithObserver(observers ...UseCaseObserver) Option {
	return func(b *base) { b.observer = useCaseObserverOrNoop(observers) }
}

func WithWritePolicy(p WritePolicy) Option {
	return func(b *base) { b.policy = p }
}

// WithClock overrides the clock that dates completions and use-case events.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) { b.logger = logger }
}

// base carries what every service shares.
type base struct {
	store    Store
	observer UseCaseObserver
	policy   WritePolicy
	now      func() time.Time
	logger   *slog.Logger
}

func newBase(store Store, opts []Option) base {
	b := base{
		store:    store,
		observer: NoopUseCaseObserver{},
		policy:   DefaultWritePolicy,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	b.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  b.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// write runs fn, retrying per the write policy while the failure looks
// transient. Domain failures are returned on the first attempt.
func (b *base) write(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := b.policy.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil || !retryable(err) {
			return err
		}
		b.logger.WarnContext(ctx, "store write failed", "op", op, "attempt", attempt, "of", attempts, "error", err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(b.policy.Backoff * time.Duration(attempt)):
		}
	}
	b.logger.ErrorContext(ctx, "store write abandoned", "op", op, "attempts", attempts, "error", err)
	return &app.Error{
		Code:    app.CodeWriteFailed,
		Message: fmt.Sprintf("%s: store write failed after %d attempt(s): %v", op, attempts, err),
		Err:     err,
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, docstore.ErrNotFound),
		errors.Is(err, docstore.ErrUnknownCollection),
		errors.Is(err, docstore.ErrInvalidDocument),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	var appErr *app.Error
	return !errors.As(err, &appErr)
}

// toAppError converts domain sentinels into typed use-case errors. Other
// errors pass through unchanged.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *app.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, docstore.ErrInvalidDocument):
		return &app.Error{Code: app.CodeValidation, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		return &app.Error{Code: app.CodeNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrConflict):
		return &app.Error{Code: app.CodeConflict, Message: err.Error(), Err: err}
	}
	return err
}

func derefAll[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
