package service

import (
	"context"
	"errors"
	"time"

	"github.com/danielokim/quotekit/internal/repository"
)

const conflictRetryAttempts = 3

// withConflictRetry reruns fn when it fails with repository.ErrConflict,
// backing off briefly between attempts. Write contention on the shared
// database file surfaces as ErrConflict and is transient.
func withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < conflictRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, repository.ErrConflict) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(1<<attempt) * 10 * time.Millisecond):
		}
	}
	return err
}

// observe reports a use-case outcome to the observer.
func observe(ctx context.Context, obs UseCaseObserver, name string, start time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     name,
		Duration: time.Since(start),
		Err:      err,
		Fields:   fields,
	})
}
