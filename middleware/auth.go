package middleware

import (
	"net/http"
	"net/url"

	"gitea.com/go-chi/session"

	"github.com/fysikteknologsektionen/ftek-login/userctx"
)

// Session keys written when a login completes
const (
	SessionUserIDKey    = "user_id"
	SessionUserEmailKey = "user_email"
)

// RequireAuth ensures the user is authenticated.
// If not authenticated, redirects to /login carrying the intended destination.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		userID, ok := sess.Get(SessionUserIDKey).(int64)
		if !ok {
			http.Redirect(w, r, "/login?redirect_to="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		ctx := userctx.SetUserID(r.Context(), userID)
		if email, ok := sess.Get(SessionUserEmailKey).(string); ok {
			ctx = userctx.SetUserEmail(ctx, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
