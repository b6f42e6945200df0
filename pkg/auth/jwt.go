package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Verification is the identity provider's job; this is only used to keep
// the session cookie from outliving the token it carries.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// SessionLifetime returns how long a cookie carrying token may live: max,
// or less if the token expires sooner. A token that is already expired
// yields zero.
func SessionLifetime(token string, max time.Duration, now time.Time) time.Duration {
	exp, ok := TokenExpiry(token)
	if !ok {
		return max
	}
	left := exp.Sub(now)
	switch {
	case left <= 0:
		return 0
	case left < max:
		return left
	default:
		return max
	}
}
