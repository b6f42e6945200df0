package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/session"
)

// Verifier resolves a session token to the admin email.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// LoginPath is the exempt admin login landing.
const LoginPath = "/admin/login"

// Gated reports whether path needs an admin session: /admin and
// everything under it except the login landing.
func Gated(path string) bool {
	if path != "/admin" && !strings.HasPrefix(path, "/admin/") {
		return false
	}
	return path != LoginPath && !strings.HasPrefix(path, LoginPath+"/")
}

// AdminGate redirects unauthenticated requests for gated paths to the
// login landing. The cookie is re-verified on every request; a cookie that
// fails verification is cleared. On success the verified email is stored
// in the request context (session.EmailFromCtx).
func AdminGate(v Verifier, opts session.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Gated(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := session.Token(r, opts)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			email, err := v.Verify(r.Context(), token)
			if err != nil {
				logger.WithCtx(r.Context()).Info("admin gate: session rejected", "path", r.URL.Path)
				session.Clear(w, opts)
				redirectToLogin(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithEmail(r.Context(), email)))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath + "?" + url.Values{"next": {r.URL.Path}}.Encode()
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
