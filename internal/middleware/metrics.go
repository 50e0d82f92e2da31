package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hongminglow/driveops-be/internal/metrics"
)

// Metrics records request counts, latency and in-flight requests.
func Metrics(m *metrics.HTTP) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			m.InFlight.Inc()
			defer m.InFlight.Dec()

			next.ServeHTTP(rec, r)

			route := routeLabel(r)
			m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			m.Duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
