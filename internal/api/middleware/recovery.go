package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/kademe/manage-user/internal/api/response"
)

// Recovery turns a panic in next into a 500 {error} response. The panic value
// and stack go to the request logger only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			Logger(r.Context()).Error("panic recovered",
				"error", rec, "method", r.Method, "path", r.URL.Path, "stack", string(debug.Stack()))
			response.Err(w, http.StatusInternalServerError, "Beklenmeyen hata")
		}()
		next.ServeHTTP(w, r)
	})
}
