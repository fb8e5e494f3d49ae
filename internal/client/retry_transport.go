package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/parser"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// statusError is returned by fetchUncached for non 200 pages that are not
// challenges. The retry transport has already retried 429 and 5xx by then.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// challengePeekSize bounds how much of an error body is inspected for challenge
// markers. Interstitials are a few KiB.
const challengePeekSize = 64 << 10

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests ||
		(code >= 500 && code != http.StatusNotImplemented)
}

func retryableError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableResponse reports a transient failure. Challenges come back with 403,
// 429 or 503 too; they are returned as is so the challenge detector sees them.
func retryableResponse(resp *http.Response) bool {
	if !retryableStatus(resp.StatusCode) || resp.Header.Get("Cf-Mitigated") != "" {
		return false
	}
	return !peekChallenge(resp)
}

// peekChallenge reads the start of resp.Body and puts it back in front of the
// remaining stream.
func peekChallenge(resp *http.Response) bool {
	head, err := io.ReadAll(io.LimitReader(resp.Body, challengePeekSize))
	resp.Body = &peekedBody{Reader: io.MultiReader(bytes.NewReader(head), resp.Body), Closer: resp.Body}
	if err != nil {
		return false
	}
	return parser.MayBeChallenge(head)
}

type peekedBody struct {
	io.Reader
	io.Closer
}

func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, challengePeekSize))
	_ = resp.Body.Close()
}

// retryTransport retries transient failures with exponential backoff. Once
// attempts are exhausted the last response is returned unchanged.
type retryTransport struct {
	next   http.RoundTripper
	policy retrypolicy.RetryPolicy[*http.Response]
}

func newRetryTransport(next http.RoundTripper, maxAttempts int, delay, maxDelay time.Duration) http.RoundTripper {
	if maxAttempts <= 1 {
		return next
	}
	if maxDelay < delay {
		maxDelay = delay
	}

	policy := retrypolicy.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return retryableError(err)
			}
			return resp != nil && retryableResponse(resp)
		}).
		WithMaxAttempts(maxAttempts).
		WithBackoff(delay, maxDelay).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[*http.Response]) {
			logger := config.GetLogger()
			event := logger.Warn().Int("attempt", e.Attempts())
			if resp := e.LastResult(); resp != nil {
				event = event.Int("status", resp.StatusCode)
				discard(resp)
			}
			event.Err(e.LastError()).Msg("Retrying request")
		}).
		Build()

	return &retryTransport{next: next, policy: policy}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := failsafe.With[*http.Response](t.policy).
		WithContext(req.Context()).
		Get(func() (*http.Response, error) {
			return t.next.RoundTrip(req)
		})
	if err != nil {
		discard(resp)
		return nil, err
	}
	return resp, nil
}
