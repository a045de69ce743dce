package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT access token without verifying its
// signature. ok is false for opaque tokens and tokens without an exp claim.
func TokenExpiry(token string) (expiry time.Time, ok bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
