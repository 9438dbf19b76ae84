package generation

import "context"

// Generator produces an email reply for a request.
// This interface separates the HTTP layer from the external LLM service.
type Generator interface {
	// GenerateReply blocks until the upstream API answers or ctx is done.
	// Every failure wraps ErrGenerationFailed; see errors.go.
	GenerateReply(ctx context.Context, req Request) (string, error)
}
