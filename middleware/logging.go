package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request through logger
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				entry := logger.WithFields(logrus.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     status,
					"bytes":      ww.BytesWritten(),
					"duration":   time.Since(start).String(),
					"ip":         ClientIP(r),
					"request_id": chimiddleware.GetReqID(r.Context()),
				})

				switch {
				case status >= http.StatusInternalServerError:
					entry.Error("Request failed")
				case r.URL.Path == "/health":
					entry.Debug("Request handled")
				default:
					entry.Info("Request handled")
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
