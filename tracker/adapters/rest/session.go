package rest

import (
	"context"
	"net/http"
	"time"

	"task-tracker/tracker/core"
	"task-tracker/tracker/pkg/res"
)

const LoginPath = "/login"

// AuthPolicy decides how a route answers a request without a valid session.
type AuthPolicy int

const (
	// PolicyRedirect sends browsers to the login page.
	PolicyRedirect AuthPolicy = iota
	// PolicyReject answers API calls with 401.
	PolicyReject
)

type usernameKey struct{}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

func UsernameFrom(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(usernameKey{}).(string)
	return u, ok && u != ""
}

// RequireSession lets the request through only with a valid session cookie
// and stores the authenticated username in the request context.
func RequireSession(sessions *core.Sessions, policy AuthPolicy, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if c, err := r.Cookie(core.SessionCookie); err == nil {
			raw = c.Value
		}

		username, err := sessions.Authenticate(raw)
		if err != nil {
			if policy == PolicyRedirect {
				res.Redirect(w, r, LoginPath)
				return
			}
			res.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
	})
}

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     core.SessionCookie,
		Value:    core.BearerValue(token),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     core.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
