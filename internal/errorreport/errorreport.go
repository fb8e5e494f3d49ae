// Package errorreport forwards unexpected failures to Sentry.
package errorreport

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

// Init configures Sentry. An empty DSN leaves reporting disabled.
func Init(dsn, environment string) error {
	if dsn == "" {
		logger := config.GetLogger()
		logger.Debug().Msg("Sentry DSN not set, error reporting disabled")
		return nil
	}
	return InitWithOptions(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	})
}

// InitWithOptions configures Sentry with explicit client options.
func InitWithOptions(opts sentry.ClientOptions) error {
	if err := sentry.Init(opts); err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	enabled.Store(true)
	return nil
}

// Capture reports err with the given tags. Cancellations and the expected
// blocked / not found signals are not reported.
func Capture(err error, tags map[string]string) {
	if err == nil || !enabled.Load() || !reportable(err) {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

func reportable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, &apperrors.ErrBlocked{}), errors.Is(err, &apperrors.ErrNotFound{}):
		return false
	}
	return true
}

// Flush waits for buffered events to be sent.
func Flush(timeout time.Duration) bool {
	if !enabled.Load() {
		return true
	}
	return sentry.Flush(timeout)
}
