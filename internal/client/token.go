// ABOUTME: Reads display-only claims from a bearer token without verifying it
// ABOUTME: Opaque (non-JWT) tokens simply report no claims

package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims holds the claims worth showing to a user.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes a JWT's registered claims without signature
// verification. ok is false for opaque tokens (e.g. Sanctum "id|secret").
func InspectToken(token string) (TokenClaims, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, false
	}

	var out TokenClaims
	out.Subject = claims.Subject
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, true
}

// Expired reports whether the claims carry an expiry that has passed.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
