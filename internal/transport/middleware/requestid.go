package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/opsrequests/request-management/pkg/logger"
)

// TraceID attaches a trace identifier to every request: incoming X-Trace-ID
// wins, otherwise a fresh UUID is minted. The ID rides on the context logger
// and is echoed back in the response header.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
