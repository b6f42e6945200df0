package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/mayorista/pkg/reqid"
)

func run(header string) (seen string, echoed string) {
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		r.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return seen, rec.Header().Get(reqid.Header)
}

func TestGeneratesID(t *testing.T) {
	seen, echoed := run("")
	assert.Equal(t, seen, echoed)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestReusesUpstreamID(t *testing.T) {
	seen, echoed := run("gateway-123")
	assert.Equal(t, "gateway-123", seen)
	assert.Equal(t, "gateway-123", echoed)
}

func TestReplacesMalformedID(t *testing.T) {
	for _, bad := range []string{"has space", strings.Repeat("x", 200)} {
		seen, _ := run(bad)
		assert.NotEqual(t, bad, seen)
		assert.NotEmpty(t, seen)
	}
}
