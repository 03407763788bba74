package database

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// RetryPolicy bounds RetryWithBackoff. The delay doubles after every failed attempt.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:  5,
	InitialDelay: 2 * time.Second,
}

// RetryWithBackoff runs operation until it succeeds, the attempts run out or ctx ends.
func RetryWithBackoff(ctx context.Context, policy RetryPolicy, log Logger, operationName string, operation func(context.Context) error) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var err error
	delay := policy.InitialDelay

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}
		if attempt == policy.MaxAttempts {
			break
		}

		log.Warn(operationName+" failed, retrying", map[string]interface{}{
			"attempt":     attempt,
			"maxAttempts": policy.MaxAttempts,
			"nextRetryIn": delay.String(),
			"error":       err.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, policy.MaxAttempts, err)
}
