package supabase

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenSubject reads the "sub" claim of a JWT access token without verifying it.
// Only for log context; the provider remains the sole authority on the token.
func TokenSubject(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
