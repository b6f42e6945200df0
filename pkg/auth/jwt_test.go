package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/pkg/auth"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return tok
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(20 * time.Minute).Truncate(time.Second)

	got, ok := auth.TokenExpiry(signed(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = auth.TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestSessionLifetime(t *testing.T) {
	now := time.Now()

	assert.Equal(t, time.Hour, auth.SessionLifetime("opaque", time.Hour, now))
	assert.Equal(t, time.Hour, auth.SessionLifetime(signed(t, now.Add(3*time.Hour)), time.Hour, now))

	short := auth.SessionLifetime(signed(t, now.Add(10*time.Minute)), time.Hour, now)
	assert.InDelta(t, (10 * time.Minute).Seconds(), short.Seconds(), 1)

	assert.Zero(t, auth.SessionLifetime(signed(t, now.Add(-time.Minute)), time.Hour, now))
}
