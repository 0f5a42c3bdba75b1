// Package pipeline holds the validation steps shared by every mutating
// operation: required fields, value ranges and cross-entity reference checks.
// Services compose the steps they need and Run stops at the first failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"bitescout.app/bitescout/pkg/apperror"
	"gorm.io/gorm"
)

type Check func(ctx context.Context) error

// Run executes checks in order and returns the first failure.
func Run(ctx context.Context, checks ...Check) error {
	for _, check := range checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Required fails when a mandatory string field is empty.
func Required(field, value string) Check {
	return func(ctx context.Context) error {
		if value == "" {
			return fmt.Errorf("%s is required: %w", field, apperror.ErrValidation)
		}
		return nil
	}
}

// Range fails when a numeric field falls outside [min, max].
func Range(field string, value, min, max int) Check {
	return func(ctx context.Context) error {
		if value < min || value > max {
			return fmt.Errorf("%s must be between %d and %d: %w", field, min, max, apperror.ErrValidation)
		}
		return nil
	}
}

// Reference fails with a not-found error naming the referenced entity kind
// when the lookup cannot resolve it.
func Reference(kind string, lookup func(ctx context.Context) error) Check {
	return func(ctx context.Context) error {
		err := lookup(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("%s not found: %w", kind, apperror.ErrNotFound)
		}
		return err
	}
}

// Merge applies a partial-update field: nil means "not supplied" and keeps
// the stored value, a present value is written through even when it is the
// zero value.
func Merge[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
