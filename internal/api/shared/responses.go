package shared

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/email-writer/internal/platform/logger"
	"github.com/phrazzld/email-writer/internal/redact"
)

// RespondWithText writes a plain-text response with the given status code.
// The request's trace ID, if any, is echoed in the X-Trace-ID header.
func RespondWithText(w http.ResponseWriter, r *http.Request, status int, body string) {
	if traceID := GetTraceID(r.Context()); traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to write response body", "error", err)
	}
}

// RespondWithErrorAndLog writes userMessage as a plain-text error response and
// logs the redacted err alongside it. The raw error never reaches the client.
//
// 5xx responses are logged at ERROR level, everything else at WARN.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	ctx := r.Context()

	// The request-scoped logger already carries trace_id
	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", redact.String(userMessage)),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	logger.FromContext(ctx).LogAttrs(ctx, logLevel, "API error response", logAttrs...)

	RespondWithText(w, r, status, userMessage)
}
