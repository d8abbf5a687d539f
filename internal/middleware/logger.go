package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapRequestLogger logs one line per request. The user id is added when the
// request passed RequireAuth further down the chain.
func ZapRequestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	isDev := logger.Core().Enabled(zapcore.DebugLevel)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var owner int
			r = r.WithContext(withOwnerSlot(r.Context(), &owner))

			defer func() {
				elapsed := time.Since(start)
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", elapsed),
					zap.String("remote_ip", r.RemoteAddr),
				}
				if reqID := middleware.GetReqID(r.Context()); reqID != "" {
					fields = append(fields, zap.String("request_id", reqID))
				}
				if owner != 0 {
					fields = append(fields, zap.Int("user_id", owner))
				}

				msg := "request completed"
				if isDev {
					msg = fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), elapsed)
				}
				switch {
				case ww.Status() >= http.StatusInternalServerError:
					logger.Error(msg, fields...)
				default:
					logger.Info(msg, fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
