package middleware

import "net/http"

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

// CORS sets the cross-origin headers the browser client needs on every response,
// including pre-flight replies. An empty origin means "*".
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			if allowedOrigin != "*" {
				h.Add("Vary", "Origin")
			}
			next.ServeHTTP(w, r)
		})
	}
}
