package middleware

import (
	"net/http"
)

// OpenIDCallback hands every request carrying marker in its query string to
// callback, whatever the path. The identity provider redirects back to the
// site root, which other routes would otherwise serve.
func OpenIDCallback(marker string, callback http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && r.URL.Query().Has(marker) {
				callback.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
