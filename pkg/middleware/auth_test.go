package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/pkg/middleware"
	"github.com/shashiranjanraj/mayorista/pkg/session"
)

type verifierFunc func(ctx context.Context, token string) (string, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (string, error) { return f(ctx, token) }

var onlyGood = verifierFunc(func(_ context.Context, token string) (string, error) {
	if token == "good" {
		return "owner@example.com", nil
	}
	return "", errors.New("unauthorized")
})

func gated(t *testing.T, calls *int) http.Handler {
	t.Helper()
	opts := session.DefaultOptions()
	return middleware.AdminGate(onlyGood, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		email, _ := session.EmailFromCtx(r.Context())
		w.Header().Set("X-Admin", email)
		w.WriteHeader(http.StatusOK)
	}))
}

func request(path, cookie string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: "admin_session", Value: cookie})
	}
	return r
}

func TestGatedPaths(t *testing.T) {
	for path, want := range map[string]bool{
		"/admin":                true,
		"/admin/":               true,
		"/admin/products":       true,
		"/admin/api/dashboard":  true,
		"/admin/login":          false,
		"/admin/login/callback": false,
		"/administrator":        false,
		"/api/auth/session":     false,
		"/api/products":         false,
		"/":                     false,
	} {
		assert.Equal(t, want, middleware.Gated(path), path)
	}
}

func TestGateRedirectsWithoutCookie(t *testing.T) {
	calls := 0
	rec := httptest.NewRecorder()
	gated(t, &calls).ServeHTTP(rec, request("/admin/products", ""))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fproducts", rec.Header().Get("Location"))
	assert.Zero(t, calls)
	assert.Empty(t, rec.Result().Cookies(), "nothing to clear")
}

func TestGateClearsRejectedCookie(t *testing.T) {
	calls := 0
	rec := httptest.NewRecorder()
	gated(t, &calls).ServeHTTP(rec, request("/admin", "forged"))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Zero(t, calls)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGatePassesVerifiedAdmin(t *testing.T) {
	calls := 0
	rec := httptest.NewRecorder()
	gated(t, &calls).ServeHTTP(rec, request("/admin/api/dashboard", "good"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "owner@example.com", rec.Header().Get("X-Admin"))
}

func TestGateIgnoresExemptPaths(t *testing.T) {
	calls := 0
	h := gated(t, &calls)
	for _, path := range []string{"/admin/login", "/api/auth/session", "/api/products"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request(path, ""))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, 3, calls)
}
