// Tests for the custom error types (ErrNotFound, ErrBlocked), their Error()
// messages, Is() matching semantics and compatibility with errors.Is()
// through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "page", ID: "https://ak.sv/movie/1"},
			expected: "page with ID https://ak.sv/movie/1 not found",
		},
		{
			name:     "with int ID",
			err:      &ErrNotFound{Resource: "episode", ID: 42},
			expected: "episode with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      &ErrNotFound{Resource: "page", ID: nil},
			expected: "page not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_Is(t *testing.T) {
	t.Parallel()
	err := NewPageNotFoundError("https://ak.sv/series/9")

	if !errors.Is(err, &ErrNotFound{}) {
		t.Error("expected errors.Is to match *ErrNotFound")
	}
	if errors.Is(err, &ErrBlocked{}) {
		t.Error("expected errors.Is not to match *ErrBlocked")
	}

	wrapped := fmt.Errorf("load failed: %w", err)
	if !errors.Is(wrapped, &ErrNotFound{}) {
		t.Error("expected wrapped error to match *ErrNotFound")
	}
}

// ---------------------------------------------------------------------------
// ErrBlocked
// ---------------------------------------------------------------------------

func TestErrBlocked_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrBlocked
		expected string
	}{
		{
			name:     "with reason",
			err:      NewBlockedError("https://ak.sv/search?q=x", "captcha form"),
			expected: "blocked by anti-bot challenge at https://ak.sv/search?q=x: captcha form",
		},
		{
			name:     "without reason",
			err:      NewBlockedError("https://ak.sv/movies?page=1", ""),
			expected: "blocked by anti-bot challenge at https://ak.sv/movies?page=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrBlocked_Is(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("fetch: %w", NewBlockedError("u", "r"))

	var blocked *ErrBlocked
	if !errors.As(err, &blocked) {
		t.Fatal("expected errors.As to find *ErrBlocked")
	}
	if blocked.URL != "u" {
		t.Errorf("URL = %q, want %q", blocked.URL, "u")
	}
	if !errors.Is(err, &ErrBlocked{}) {
		t.Error("expected errors.Is to match *ErrBlocked")
	}
	if errors.Is(err, &ErrNotFound{}) {
		t.Error("expected errors.Is not to match *ErrNotFound")
	}
}
