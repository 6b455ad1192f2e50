// Package middleware holds the HTTP middleware shared by the TripScout API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler applies CORS for the given origins. Each origin is a full
// scheme+host with no trailing slash; "*" allows any origin.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         600,
	})
	return c.Handler
}
