package middleware

import (
	"log"
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the admin console and the public help-center SPA call the API. Origins may use a
// single "*" wildcard, e.g. https://*.brainhints.app. An empty list reflects any origin, which
// is only meant for local development.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if len(allowedOrigins) == 0 {
		// "*" cannot be combined with credentials, so echo the caller's origin instead
		log.Println("[CORS] no ALLOWED_ORIGINS, reflecting every origin")
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		log.Printf("[CORS] allowed origins: %v", allowedOrigins)
		opts.AllowedOrigins = allowedOrigins
	}
	return cors.Handler(opts)
}
