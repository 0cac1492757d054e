package qweather

import (
	"context"
	"errors"
	"fmt"
)

// attempt is one step of an ordered fallback chain: an endpoint call paired
// with an applicability predicate. Call either produces a usable result or
// returns an error to pass control to the next step.
type attempt[T any] struct {
	// Name identifies the endpoint in logs and joined errors.
	Name string
	// When gates the attempt; a nil predicate means always applicable.
	When func() bool
	// Call issues the request and parses the result.
	Call func(ctx context.Context) (T, error)
}

// tryChain runs the attempts in order until one returns a usable result.
// When the chain is exhausted it returns the zero value and the collected
// per-attempt errors; the caller decides how to degrade.
func tryChain[T any](ctx context.Context, chain []attempt[T]) (T, error) {
	var zero T
	var errs []error

	for _, a := range chain {
		if a.When != nil && !a.When() {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result, err := a.Call(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Name, err))
			continue
		}
		return result, nil
	}

	if len(errs) == 0 {
		return zero, errors.New("no applicable endpoints in chain")
	}
	return zero, errors.Join(errs...)
}
