package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/ports"
)

const (
	// ContextSession holds the caller's ports.Session.
	ContextSession = "session"
	// ContextSessionID holds the session id taken from the token.
	ContextSessionID = "session_id"
)

// Session validates the bearer session token and loads its session into the
// echo context.
func Session(jwtSecret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session id")
			}

			sess, err := sessions.Session(c.Request().Context(), sid)
			if err != nil {
				return err
			}

			c.Set(ContextSessionID, sid)
			c.Set(ContextSession, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session loaded by the Session middleware.
func SessionFrom(c echo.Context) (ports.Session, bool) {
	sess, ok := c.Get(ContextSession).(ports.Session)
	return sess, ok && sess != nil
}
