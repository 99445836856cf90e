package ghosthire

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is returned before any network call when neither job text
	// nor job URL is present.
	ErrValidation = errors.New("either job text or job url is required")
	// ErrNetwork wraps transport failures that happen before a response arrives.
	ErrNetwork = errors.New("backend not reachable")
	// ErrInvalidResponse is returned when the response body is not JSON.
	ErrInvalidResponse = errors.New("malformed server response")
)

const (
	MessageValidation      = "Either job text or job URL is required"
	MessageNetwork         = "Backend not reachable"
	MessageInvalidResponse = "Malformed server response"
	MessageServiceFallback = "Something went wrong"
)

// ServiceError is a parsed JSON response with a non-success status.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.UserMessage())
}

// UserMessage returns the server supplied message or the generic fallback.
func (e *ServiceError) UserMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return MessageServiceFallback
}

// UserMessage converts any error returned by the client into the text shown to
// the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var serviceErr *ServiceError
	switch {
	case errors.As(err, &serviceErr):
		return serviceErr.UserMessage()
	case errors.Is(err, ErrValidation):
		return MessageValidation
	case errors.Is(err, ErrNetwork):
		return MessageNetwork
	case errors.Is(err, ErrInvalidResponse):
		return MessageInvalidResponse
	default:
		return MessageServiceFallback
	}
}
