package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys under which the guard stores the authenticated identity.
const (
	ContextEmail = "email"
	ContextRole  = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject email and role claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  A request without an authorization header is rejected with 401;
// a request carrying a token that does not verify (bad signature, expired,
// wrong algorithm) is rejected with 403.  Handlers behind this middleware
// read the identity via c.Get(middleware.ContextEmail).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header.  A valid header starts with
			// "Bearer " followed by the JWT.  A missing credential is an
			// authentication problem, hence 401.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token with the HS256 signing method and our secret.
			// The callback supplies the signing key and rejects any token
			// signed with an unexpected algorithm.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrForbidden
				}
				return []byte(secret), nil
			})
			// A credential that was presented but does not verify is a
			// forbidden request, not an unauthenticated one.
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid claims"})
			}

			// Store the subject email and role claims as plain strings so
			// handlers do not have to repeat type assertions on claims.
			email, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			c.Set(ContextEmail, email)
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}
