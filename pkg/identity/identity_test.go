package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/pkg/identity"
)

func newProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:lookup", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.NotEmpty(t, in["idToken"])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupReturnsFirstEmail(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"users":[{"email":"Owner@Example.com"},{"email":"other@example.com"}]}`)

	email, err := identity.New(srv.URL+"/", "test-key").Lookup(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Owner@Example.com", email)
}

func TestLookupRejectsBadAnswers(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"provider error": {http.StatusBadRequest, `{"error":{"message":"INVALID_ID_TOKEN"}}`},
		"no users":       {http.StatusOK, `{"users":[]}`},
		"no email":       {http.StatusOK, `{"users":[{"localId":"x"}]}`},
		"garbage":        {http.StatusOK, `not json`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newProvider(t, tc.status, tc.body)
			_, err := identity.New(srv.URL, "test-key").Lookup(context.Background(), "tok")
			assert.ErrorIs(t, err, identity.ErrInvalidToken)
		})
	}
}

func TestLookupEmptyTokenSkipsNetwork(t *testing.T) {
	_, err := identity.New("http://127.0.0.1:1", "test-key").Lookup(context.Background(), " ")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestLookupRetriesDroppedConnection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`{"users":[{"email":"owner@example.com"}]}`))
	}))
	t.Cleanup(srv.Close)

	email, err := identity.New(srv.URL, "test-key").Lookup(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", email)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLookupGivesUpAfterRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	_, err := identity.New(srv.URL, "test-key").Lookup(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrInvalidToken)
	assert.EqualValues(t, 2, calls.Load())
}
