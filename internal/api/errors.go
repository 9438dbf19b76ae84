package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/redact"
)

// InternalErrorPrefix starts the body of responses for unexpected faults.
const InternalErrorPrefix = "Internal Server Error: "

// invalidRequestMessage is returned for bodies that cannot be decoded.
const invalidRequestMessage = generation.Marker + "Invalid request format"

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Generation failures of every kind map to 500 so callers cannot tell an
// upstream outage from an unusable response.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the caller-visible body for err. Generation
// failures render through generation.Message. Anything else is reported as
// an internal server error with its redacted message.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return InternalErrorPrefix + "unknown error"
	case errors.Is(err, shared.ErrInvalidRequest):
		return invalidRequestMessage
	case errors.Is(err, generation.ErrGenerationFailed):
		return generation.Message(err)
	default:
		return InternalErrorPrefix + redact.Error(err)
	}
}

// panicError converts a recovered panic value to an error.
func panicError(v interface{}) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
