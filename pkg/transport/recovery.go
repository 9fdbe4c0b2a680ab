package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jtg86/azure-ai-demo/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to a 500 response. The panic value is logged but never sent
// to the client. The server continues to accept new requests after a panic
// is recovered.
func Recovery(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(rec)),
				)
				WriteError(w, api.NewInternalError("internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
