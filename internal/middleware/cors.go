package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins with credentials. No origins, or "*",
// reflects any origin back.
func CORS(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if allowAny(allowedOrigins) {
		options.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		options.AllowedOrigins = allowedOrigins
	}

	return cors.Handler(options)
}

func allowAny(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
