package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing user_id
// or role means the middleware did not run (or the token carried no
// identity), so the request is rejected with 401 up front.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// optionalClaims is the anonymous-tolerant variant used on the feed
// route: an unauthenticated request yields empty strings.
func optionalClaims(c echo.Context) (userID, role string) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	return userID, role
}
