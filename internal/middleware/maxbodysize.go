package middleware

import (
	"fmt"
	"net/http"
)

// NewMaxBodySizeHandler caps request bodies at limit bytes. A declared
// Content-Length over the limit is refused with 413 before the next handler
// runs; otherwise the body is wrapped in http.MaxBytesReader so an oversized
// stream fails on read.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				fmt.Fprintf(w, `{"error":{"code":"payload_too_large","message":"request body exceeds %d bytes"}}`+"\n", limit)
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
