// Package session manages the admin session cookie and carries the
// verified admin identity through the request context.
//
// The cookie holds the identity-provider token itself; nothing is stored
// server side, and every gated request re-verifies the token.
//
//	session.Write(w, opts, token, maxAge)
//	email, ok := session.EmailFromCtx(r.Context())
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/mayorista/config"
)

// ------------------- Options -------------------

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the admin cookie settings. Secure follows APP_ENV.
func DefaultOptions() Options {
	return Options{
		CookieName: "admin_session",
		TTL:        time.Hour,
		HTTPOnly:   true,
		Secure:     config.IsProduction(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Cookie -------------------

// Write sets the session cookie. maxAge <= 0 or above the TTL falls back
// to the TTL.
func Write(w http.ResponseWriter, opts Options, token string, maxAge time.Duration) {
	if maxAge <= 0 || maxAge > opts.TTL {
		maxAge = opts.TTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.Path,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// Clear expires the session cookie on the client.
func Clear(w http.ResponseWriter, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// Token returns the raw cookie value, if present and non-empty.
func Token(r *http.Request, opts Options) (string, bool) {
	c, err := r.Cookie(opts.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ------------------- Context -------------------

type ctxKey struct{}

// WithEmail stores the verified admin email in ctx.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, email)
}

// EmailFromCtx returns the verified admin email set by the admin gate.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxKey{}).(string)
	return email, ok && email != ""
}
