package client

import (
	"context"
	"errors"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/errorreport"
	"github.com/Belphemur/AkwamProvider/internal/metrics"
)

// surfaced reports whether err must reach the host. Blocked and not found are
// the two signals the host understands; cancellation belongs to the caller.
func surfaced(err error) bool {
	return errors.Is(err, &apperrors.ErrBlocked{}) ||
		errors.Is(err, &apperrors.ErrNotFound{}) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func statusLabel(err error, empty bool) string {
	switch {
	case err == nil && empty:
		return "empty"
	case err == nil:
		return "ok"
	case errors.Is(err, &apperrors.ErrBlocked{}):
		return "blocked"
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return "not_found"
	default:
		return "error"
	}
}

// recordFailure logs and reports an operation failure and tells the caller
// whether to return it. Anything that is not a surfaced signal is swallowed
// and the operation answers with an empty result.
func recordFailure(operation, url string, err error) error {
	logger := config.GetLogger()
	metrics.ProviderRequestsTotal.WithLabelValues(operation, statusLabel(err, false)).Inc()

	if surfaced(err) {
		logger.Warn().Err(err).Str("operation", operation).Str("url", url).Msg("Provider operation failed")
		return err
	}

	logger.Error().Err(err).Str("operation", operation).Str("url", url).Msg("Provider operation failed, returning empty result")
	errorreport.Capture(err, map[string]string{"operation": operation, "url": url})
	return nil
}

func recordSuccess(operation string, empty bool) {
	metrics.ProviderRequestsTotal.WithLabelValues(operation, statusLabel(nil, empty)).Inc()
}
