package generation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Marker prefixes every caller-visible failure string.
const Marker = "Error: "

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is wrapped by every runtime generation failure
	ErrGenerationFailed = errors.New("failed to generate email reply")

	// ErrUpstreamStatus is returned when the API answers with a non-2xx status
	ErrUpstreamStatus = fmt.Errorf("%w: upstream status", ErrGenerationFailed)

	// ErrUpstreamUnavailable is returned when the API could not be reached or the call was aborted
	ErrUpstreamUnavailable = fmt.Errorf("%w: upstream unavailable", ErrGenerationFailed)

	// ErrEmptyResponse is returned when the API answers with an empty body
	ErrEmptyResponse = fmt.Errorf("%w: empty response", ErrGenerationFailed)

	// ErrMalformedResponse is returned when the API body is not valid JSON
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrGenerationFailed)

	// ErrMissingContent is returned when the JSON lacks candidates[0].content.parts[0].text
	ErrMissingContent = fmt.Errorf("%w: missing content", ErrGenerationFailed)

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// StatusError records a non-2xx answer from the upstream API.
type StatusError struct {
	Code   int
	Status string
}

// NewStatusError builds a StatusError whose Status reads "<code> <reason>".
func NewStatusError(code int) *StatusError {
	return &StatusError{
		Code:   code,
		Status: strings.TrimSpace(fmt.Sprintf("%d %s", code, http.StatusText(code))),
	}
}

func (e *StatusError) Error() string {
	return "API request failed with status " + e.Status
}

// Unwrap lets errors.Is match ErrUpstreamStatus.
func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Message renders err as the marker-prefixed text returned to callers.
// Upstream bodies and transport details never appear in the result.
func Message(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return Marker + statusErr.Error()
	case errors.Is(err, ErrEmptyResponse):
		return Marker + "Received empty response from API."
	case errors.Is(err, ErrMalformedResponse):
		return Marker + "Unable to process API response."
	case errors.Is(err, ErrMissingContent):
		return Marker + "Unable to extract content from API response."
	default:
		return Marker + "Unable to generate email reply."
	}
}
