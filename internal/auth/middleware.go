package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKeyMiddleware returns an http.Handler wrapping next that enforces
// API key authentication on every request.
//
// Behavior:
//   - If mode != "apikey" or key == "", all requests are allowed (pass-through).
//   - Otherwise the middleware reads the named header and compares it to
//     key in constant time.
//   - A missing or incorrect key returns 401 with a JSON {"error": "..."} body.
func APIKeyMiddleware(mode, header, key string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mode != "apikey" || key == "" {
			next.ServeHTTP(w, r)
			return
		}

		got := r.Header.Get(header)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
