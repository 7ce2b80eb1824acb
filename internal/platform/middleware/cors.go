package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORS returns a middleware that lets any origin read the greeting and health
// documents. Only the read methods the API serves are advertised.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			chimiddleware.RequestIDHeader,
			"traceparent",
		},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	})
}
