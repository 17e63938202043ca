package middleware

import (
	"net/http"
	"strconv"
	"time"

	"pnsMembership/internal/metrics"

	"github.com/gorilla/mux"
)

// Metrics records request counts and latency by route template. It must be
// installed with Router.Use so the matched route is known.
func Metrics(reg *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)

			reg.HTTPRequestsInFlight.WithLabelValues(route).Inc()
			defer reg.HTTPRequestsInFlight.WithLabelValues(route).Dec()

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			reg.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.statusCode)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unknown"
}
