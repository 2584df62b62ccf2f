package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its id, status and latency.
// Health checks are skipped. Must run after chi's RequestID middleware.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			latency := time.Since(start)
			fields := []zap.Field{
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("client_ip", r.RemoteAddr),
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.Int("bytes", ww.BytesWritten()),
			}

			switch {
			case status >= 500:
				logger.Error("request completed with server error", fields...)
			case status >= 400:
				logger.Warn("request completed with client error", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}
