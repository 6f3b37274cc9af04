package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired peeks at the JWT's exp claim without verifying the signature;
// verification is the backend's job, this just avoids sending a request we
// already know will bounce. Tokens that aren't JWTs pass through untouched.
func tokenExpired(tok string) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
