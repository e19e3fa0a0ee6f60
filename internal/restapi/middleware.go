package restapi

import (
	"net/http"
	"strconv"
	"time"

	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLoggingMiddleware logs every request, records the request counter
// and latency histogram, and carries the logger on the request context for
// downstream handlers.
func (api *RestAPI) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(logging.WithLogger(r.Context(), api.Logger))

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		logging.LogHTTPRequest(api.Logger, r.Method, r.URL.Path, rec.status,
			float64(elapsed.Milliseconds()))

		pattern := r.Pattern
		if pattern == "" {
			pattern = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(elapsed.Seconds())
	})
}
