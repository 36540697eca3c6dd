package middleware

import (
	"context"
	"net/http"
	"time"

	"dreamvault/pkg/observability"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics records per-request count and latency. The recorder is nil-safe,
// so the middleware can be installed unconditionally.
func Metrics(recorder *observability.MetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			// Shipping must not extend the request or die with its context
			ctx := context.WithoutCancel(r.Context())
			duration := time.Since(start)
			go func() {
				recorder.Count(ctx, "RequestCount", 1)
				recorder.Latency(ctx, "RequestLatency", duration)
				if ww.Status() >= http.StatusInternalServerError {
					recorder.Count(ctx, "RequestErrors", 1)
				}
			}()
		})
	}
}
