package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/logger"
)

// EmailHandler handles email reply generation requests
type EmailHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewEmailHandler creates a new EmailHandler. A nil logger falls back to
// slog.Default().
func NewEmailHandler(generator generation.Generator, log *slog.Logger) *EmailHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EmailHandler{
		generator: generator,
		logger:    log.With("component", "email_handler"),
	}
}

// Generate handles POST /api/emails/generate requests.
//
// The reply text is returned as text/plain with 200. Generation failures
// return 500 with a body starting with "Error: ". Unexpected faults,
// including panics, return 500 with a body starting with
// "Internal Server Error: ".
func (h *EmailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := panicError(rec)
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		}
	}()

	log.InfoContext(ctx, "Received request to generate email")

	var req generation.Request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	reply, err := h.generator.GenerateReply(ctx, req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.InfoContext(ctx, "Email generated successfully", "reply_length", len(reply))
	shared.RespondWithText(w, r, http.StatusOK, reply)
}
