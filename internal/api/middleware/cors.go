package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the directory front end to call the API from the configured origins.
// An empty list or "*" allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Forwarded-For"},
		ExposedHeaders: []string{"ETag", "Retry-After"},
		MaxAge:         300,
	})

	return c.Handler
}
