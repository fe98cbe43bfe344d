// Package concurrent provides bounded-parallelism helpers for staging many
// scripts and tearing their resources down again.
package concurrent

import (
	"context"
	"errors"
	"sync"
)

// ForEach executes fn for each item concurrently and waits for all of them.
// Errors from individual items are joined; a failing item does not stop the
// others, matching how independent stage operations behave.
func ForEach[T any](items []T, fn func(T) error) error {
	if len(items) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(items))

	for _, item := range items {
		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			if err := fn(item); err != nil {
				errCh <- err
			}
		}(item)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MapWithLimit applies fn to each item with at most limit goroutines in
// flight and returns the results in input order. Items that were never
// started because the context was cancelled report the context error in
// their slot.
func MapWithLimit[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	if limit <= 0 {
		limit = 1
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, item := range items {
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			default:
			}

			results[i], errs[i] = fn(ctx, item)
		}(i, item)
	}

	wg.Wait()

	var joined []error
	for _, err := range errs {
		if err != nil {
			joined = append(joined, err)
		}
	}
	if len(joined) > 0 {
		return results, errors.Join(joined...)
	}
	return results, nil
}
