package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// TraceHeader is propagated by upstream proxies; when absent a trace id is generated.
const TraceHeader = "X-Trace-ID"

// Middleware attaches a per-request logger to the context and logs request start and finish.
func Middleware(base Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = reqID
			}
			if traceID == "" {
				traceID = uuid.NewString()
			}
			w.Header().Set(TraceHeader, traceID)

			fields := Fields{"trace_id": traceID}
			if reqID != "" {
				fields["request_id"] = reqID
			}
			reqLogger := base.WithFields(fields)
			httpLogger := reqLogger.WithFields(Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			httpLogger.Debug("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(WithContext(r.Context(), reqLogger)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			finished := Fields{
				"status_code":   status,
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(start).Milliseconds(),
			}
			if status >= http.StatusInternalServerError {
				httpLogger.Warn("Request finished with server error", finished)
				return
			}
			httpLogger.Info("Request finished", finished)
		})
	}
}
