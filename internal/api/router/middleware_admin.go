package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const adminTokenHeader = "X-Admin-Token"

// requireAdminToken enforces the operator token on /admin routes.
func requireAdminToken(expected string) func(http.Handler) http.Handler {
	expected = strings.TrimSpace(expected)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				http.Error(w, "invalid admin token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
