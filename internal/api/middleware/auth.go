package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/core/ports"
)

// Auth validates the JWT, checks that its session has not been revoked,
// and injects claims into context. A nil session store skips the
// revocation check.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, jwtSecret)
			if err != nil {
				return err
			}
			if err := checkSession(c, claims, sessions); err != nil {
				return err
			}
			injectClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a bearer token is present, but lets
// anonymous requests through without claims. A present-but-invalid token
// is still rejected.
func OptionalAuth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, err := parseBearer(c, jwtSecret)
			if err != nil {
				return err
			}
			if err := checkSession(c, claims, sessions); err != nil {
				return err
			}
			injectClaims(c, claims)
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, jwtSecret string) (jwt.MapClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func checkSession(c echo.Context, claims jwt.MapClaims, sessions ports.SessionStore) error {
	if sessions == nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	userID, err := sessions.UserID(c.Request().Context(), jti)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "session lookup failed")
	}
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	return nil
}

func injectClaims(c echo.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["sub"])
	c.Set("username", claims["username"])
	c.Set("role", claims["role"])
	c.Set("token_id", claims["jti"])
}
