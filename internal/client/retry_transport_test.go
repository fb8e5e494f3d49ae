package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/testutil"
)

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusNotImplemented, false},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		if got := retryableStatus(tt.code); got != tt.want {
			t.Errorf("retryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestRetryableError(t *testing.T) {
	t.Parallel()

	if retryableError(nil) {
		t.Error("nil must not be retried")
	}
	if retryableError(context.Canceled) || retryableError(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !retryableError(errors.New("connection reset")) {
		t.Error("network errors must be retried")
	}
}

func TestRetryTransport_ReturnsLastResponse(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprintf(w, "attempt %d", n)
	}))
	defer server.Close()

	client := &http.Client{Transport: newRetryTransport(http.DefaultTransport, 3, time.Millisecond, 2*time.Millisecond)}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("Expected the last response after exhausting retries, got %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusBadGateway || string(body) != "attempt 3" {
		t.Errorf("Expected the third 502, got %d %q", resp.StatusCode, body)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestRetryTransport_CloudflareOriginErrorsAreRetried(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{"bad gateway", http.StatusBadGateway},
		{"too many requests", http.StatusTooManyRequests},
		{"unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				w.Header().Set("Server", "cloudflare")
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte("<html><body>origin error</body></html>"))
			}))
			defer server.Close()

			client := &http.Client{Transport: newRetryTransport(http.DefaultTransport, 3, time.Millisecond, 2*time.Millisecond)}
			resp, err := client.Get(server.URL)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			resp.Body.Close()
			if n := hits.Load(); n != 3 {
				t.Errorf("Expected 3 attempts, got %d", n)
			}
		})
	}
}

func TestRetryTransport_ChallengeNotRetried(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		headers map[string]string
		body    string
	}{
		{"cf mitigated header", http.StatusServiceUnavailable, map[string]string{"Cf-Mitigated": "challenge"}, "<html></html>"},
		{"recaptcha body", http.StatusServiceUnavailable, nil, `<html><head><title>Captcha</title></head><body><div class="g-recaptcha"></div></body></html>`},
		{"interstitial body", http.StatusTooManyRequests, map[string]string{"Server": "cloudflare"}, testutil.GenerateChallengeHTML()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := &http.Client{Transport: newRetryTransport(http.DefaultTransport, 3, time.Millisecond, 2*time.Millisecond)}
			resp, err := client.Get(server.URL)
			if err != nil {
				t.Fatalf("Expected the challenge response to pass through, got %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.code || hits.Load() != 1 {
				t.Errorf("Expected one %d, got %d after %d requests", tt.code, resp.StatusCode, hits.Load())
			}
			if string(body) != tt.body {
				t.Errorf("Expected the peeked body to be restored, got %q", body)
			}
		})
	}
}

func TestNewRetryTransport_SingleAttempt(t *testing.T) {
	t.Parallel()

	next := http.DefaultTransport
	if got := newRetryTransport(next, 1, time.Millisecond, time.Millisecond); got != next {
		t.Error("Expected the next transport to be returned unwrapped")
	}
}
