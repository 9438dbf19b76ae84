package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and response headers.
// An inbound X-Trace-ID is reused when it is a UUID. A request-scoped logger
// carrying the trace ID is stored in the context for downstream handlers.
//
// This middleware should be applied early in the middleware chain so that all
// subsequent handlers see the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if inbound := r.Header.Get(shared.TraceIDHeader); shared.ValidTraceID(inbound) {
				ctx = shared.WithTraceID(ctx, inbound)
			} else {
				ctx = shared.SetTraceID(ctx)
			}
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			// Set before the handler writes so the header survives panics and early returns
			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
