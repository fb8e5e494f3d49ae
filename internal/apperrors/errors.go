package apperrors

import "fmt"

// ErrNotFound represents an error when a requested page or resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewPageNotFoundError creates a specific error for a site page answering HTTP 404.
func NewPageNotFoundError(url string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "page",
		ID:       url,
	}
}

// ErrBlocked is the single "blocked" signal raised when the site answers with a
// CAPTCHA or anti-bot challenge that could not be bypassed. Hosts are expected to
// ask the user to retry through a browser.
type ErrBlocked struct {
	URL    string
	Reason string
}

// Error implements the error interface.
func (e *ErrBlocked) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("blocked by anti-bot challenge at %s: %s", e.URL, e.Reason)
	}
	return fmt.Sprintf("blocked by anti-bot challenge at %s", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrBlocked) Is(target error) bool {
	_, ok := target.(*ErrBlocked)
	return ok
}

// NewBlockedError creates a new ErrBlocked.
func NewBlockedError(url, reason string) *ErrBlocked {
	return &ErrBlocked{
		URL:    url,
		Reason: reason,
	}
}
