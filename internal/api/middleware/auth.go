package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
)

const (
	adminTokenHeader = "X-Admin-Token"

	msgUnauthorized = "jeton d'administration invalide"
)

// AdminAuth guards the admin routes with a shared token. The comparison is
// constant-time.
func AdminAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
