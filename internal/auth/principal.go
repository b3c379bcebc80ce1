package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// CurrentUserID resolves the acting user from the JWT the echo-jwt middleware
// stored on the request context. Handlers receive the principal explicitly
// through this helper instead of any ambient session state.
func CurrentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return uint(id), nil
}
