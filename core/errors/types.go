// ABOUTME: Request-level error types for saved articles, headline requests and article pages
// ABOUTME: Handlers map them to HTTP statuses; the reader reports page failures with them

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a saved article or other resource does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError rejects a request parameter or body field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// UpstreamStatusError is a third-party page that answered with a non-2xx status
type UpstreamStatusError struct {
	Source     string
	URL        string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Source, e.StatusCode)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// UpstreamStatus returns the status code carried by an UpstreamStatusError in err's chain
func UpstreamStatus(err error) (int, bool) {
	var target *UpstreamStatusError
	if errors.As(err, &target) {
		return target.StatusCode, true
	}
	return 0, false
}

// WrapError prefixes err with message, keeping it matchable with errors.Is and errors.As
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
