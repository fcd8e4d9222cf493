package utils // package utils provides helper functions for token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/ktmart/marketplace-api/internal/model"
)

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user's email, the user's role, and a TTL in days.
// The JWT includes standard claims: subject (sub, the email), role,
// expiration (exp) and issued at (iat).  There is no refresh or revocation
// mechanism; clients simply request a new token when theirs expires.
func NewAccessToken(secret, email string, role model.Role, ttlDays int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"exp":  now.Add(time.Duration(ttlDays) * 24 * time.Hour).Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
