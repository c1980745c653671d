package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Bethel-nz/foodprint/internal/logger"
)

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Logger logs one entry per request and stores a request-scoped logger in
// the request context. Health and metrics requests are logged at debug
// level. Place it after RequestID to get a request_id field.
func Logger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			fields := []logger.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
			}
			if id := RequestIDFromContext(r.Context()); id != "" {
				fields = append(fields, logger.String("request_id", id))
			}
			reqLog := log.With(fields...)
			next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			fields = []logger.Field{
				logger.Int("status", rec.status),
				logger.Int("bytes", rec.bytes),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_addr", r.RemoteAddr),
			}
			if r.URL.RawQuery != "" {
				fields = append(fields, logger.String("query", r.URL.RawQuery))
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				reqLog.Error("HTTP request", fields...)
			case isHealthCheck(r.URL.Path):
				reqLog.Debug("HTTP request", fields...)
			default:
				reqLog.Info("HTTP request", fields...)
			}
		})
	}
}

func isHealthCheck(path string) bool {
	return path == "/livez" || path == "/readyz" || path == "/metrics" || strings.HasPrefix(path, "/health")
}
